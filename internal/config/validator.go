package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Report fields by their environment variable name
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return fld.Tag.Get("env")
		})
		validate = v
	})
	return validate
}

// Validate checks struct constraints and reports failing variables by name
func Validate(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(msgs, "; "))
}

// Warnings returns non-fatal problems such as a missing Instagram app
func (c *Config) Warnings() []string {
	var warnings []string

	if !c.InstagramConfigured() {
		warnings = append(warnings, "INSTAGRAM_APP_ID or INSTAGRAM_APP_SECRET is empty - account linking is disabled")
	}

	if c.APIKey == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	enabled := 0
	for _, f := range c.Feeds {
		if f.Enabled() {
			enabled++
		}
	}
	if enabled == 0 {
		warnings = append(warnings, "no feed has FETCH_COUNT > 0 - scheduled synchronization is disabled")
	}

	if c.StateDriver == StateDriverMemory {
		warnings = append(warnings, "STATE_DRIVER=memory - the linked token and cursors are lost on restart")
	}

	return warnings
}
