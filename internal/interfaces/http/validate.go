package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida del validador declarativo para los DTOs.
var validate = validator.New()
