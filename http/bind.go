package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"prospection-agent/domain"
	"prospection-agent/errs"
)

const maxBodyBytes = 1 << 20

type validatorSvc struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func getValidator() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// report json names, not Go field names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterTranslation("gte", trans,
			func(ut ut.Translator) error {
				return ut.Add("gte", "{0} must not be negative", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("gte", fe.Field())
				return msg
			},
		)

		vSvc = &validatorSvc{validate: v, translator: trans}
	})
	return vSvc
}

// bindInput decodes the request body over a copy of defaults, so fields the
// client omits keep their default value. An empty body yields the defaults.
func bindInput(r *http.Request, defaults domain.ProspectionInput) (domain.ProspectionInput, error) {
	in := defaults

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return defaults, validateInput(defaults)
		}
		return domain.ProspectionInput{}, errs.JSONf("invalid JSON: %v", err)
	}
	if dec.More() {
		return domain.ProspectionInput{}, errs.JSONf("unexpected trailing data")
	}

	if err := validateInput(in); err != nil {
		return domain.ProspectionInput{}, err
	}
	return in, nil
}

func validateInput(in domain.ProspectionInput) error {
	svc := getValidator()
	err := svc.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errs.WithField(errs.Validationf("%s", fe.Translate(svc.translator)), fe.Field())
	}
	return errs.Validationf("%s", err.Error())
}
