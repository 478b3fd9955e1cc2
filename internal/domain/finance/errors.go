package finance

import "errors"

var ErrFinanceNotFound = errors.New("finance record not found")
