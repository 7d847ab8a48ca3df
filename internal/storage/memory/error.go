package memory

import "errors"

var ErrNilPricelist = errors.New("nil pricelist")
