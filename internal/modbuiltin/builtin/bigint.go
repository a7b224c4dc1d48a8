package builtin

import "math/big"

func bigFromInt(v int) *big.Int {
	return big.NewInt(int64(v))
}
