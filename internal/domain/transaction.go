package domain

import (
	"encoding/json"
	"time"
)

type Transaction struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	TxHash    string          `json:"tx_hash" db:"tx_hash"`
	Viewed    bool            `json:"viewed" db:"viewed"`
	Completed bool            `json:"completed" db:"completed"`
	Data      json.RawMessage `json:"data,omitempty" db:"data"`
	Created   time.Time       `json:"created" db:"created"`

	OwnerAddress string `json:"-" db:"owner_address"`
}

type CreateTransactionInput struct {
	TxHash string          `json:"tx_hash" validate:"required,max=128"`
	Data   json.RawMessage `json:"data"`
}
