package validation

import (
	"reflect"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"gopkg.in/go-playground/validator.v9"

	"github.com/lloydmeta/esversions/internal/api/models/common"
)

func SetUpValidators() {
	log.Info().Msg("Setting up custom validators")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterDateType(v)
	}
}

// RegisterDateType makes the validator see common.Date fields as the time.Time they wrap, so
// tags like `required` apply to them. Without it, validator treats Dates as nested structs and
// skips their tags.
func RegisterDateType(v *validator.Validate) {
	v.RegisterCustomTypeFunc(DateValuer, common.Date{})
}

var DateValuer validator.CustomTypeFunc = func(field reflect.Value) interface{} {
	if d, ok := field.Interface().(common.Date); ok {
		return time.Time(d)
	}
	return nil
}
