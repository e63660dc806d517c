package delivery

import (
	"fmt"
	"sync"

	"mindmaker-backend/internal/board"
	"mindmaker-backend/internal/document/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the "template" and "doc_status" binding tags to gin's
// validator. Safe to call more than once. It panics if the tags cannot be
// registered, since every create and update request depends on them.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("unexpected binding validator engine %T", binding.Validator.Engine()))
		}
		for tag, fn := range map[string]validator.Func{
			"template":   validTemplate,
			"doc_status": validStatus,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %q validator: %v", tag, err))
			}
		}
	})
}

func validTemplate(fl validator.FieldLevel) bool {
	_, err := board.ParseKind(fl.Field().String())
	return err == nil
}

func validStatus(fl validator.FieldLevel) bool {
	return domain.Status(fl.Field().String()).Valid()
}
