package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrSettingNotFound = errors.New("setting not found")

// Setting is one global site configuration entry (currency, country,
// carousel options). Changes to critical keys flush the carousel caches.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PutSettingRequest struct {
	Value string `json:"value"`
}

func (r PutSettingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.Length(0, 4096)),
	)
}
