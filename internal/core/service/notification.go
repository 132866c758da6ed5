package service

import "errors"

type Operation string

const (
	OpAddProduct          Operation = "add_product"
	OpRemoveProduct       Operation = "remove_product"
	OpUpdateProductAmount Operation = "update_product_amount"
)

// User-facing messages shown by the storefront.
const (
	MsgStockExhausted  = "Quantidade solicitada fora de estoque"
	MsgProductNotFound = "Produto não encontrado"
	MsgAddFailed       = "Erro na adição do produto"
	MsgRemoveFailed    = "Erro na remoção do produto"
	MsgUpdateFailed    = "Erro na alteração de quantidade do produto"
)

// Notification converts the result of op into the message shown to the
// shopper. It returns an empty string when err is nil.
func Notification(op Operation, err error) string {
	if err == nil {
		return ""
	}

	switch op {
	case OpAddProduct:
		if errors.Is(err, ErrStockExhausted) {
			return MsgStockExhausted
		}
		return MsgAddFailed
	case OpUpdateProductAmount:
		if errors.Is(err, ErrStockExhausted) {
			return MsgStockExhausted
		}
		if errors.Is(err, ErrProductNotInCart) {
			return MsgProductNotFound
		}
		return MsgUpdateFailed
	default:
		return MsgRemoveFailed
	}
}
