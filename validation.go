package logging

import (
	stderrs "errors"
	"path/filepath"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *SinkConfiguration) error {
	const op errors.Op = "logging.validateConfig"

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		field := emptyString
		var verrs validator.ValidationErrors
		if stderrs.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		return configError(field, errors.New(op).Err(err).Msg(errMsgConfigInvalid))
	}

	if _, err := CompileLayout(cfg.LinePattern); err != nil {
		return configError("LinePattern", errors.New(op).Err(err).Msg(errMsgPatternInvalid))
	}

	np, err := compileNamePattern(cfg.RotatedPathPattern)
	if err != nil {
		return configError("RotatedPathPattern", errors.New(op).Err(err).Msg(errMsgPatternInvalid))
	}
	if !np.hasDate {
		return configError("RotatedPathPattern", errors.New(op).Msg(errMsgRotatedNoDate))
	}

	if _, err := filepath.Match(cfg.DeletionNamePattern, emptyString); err != nil {
		return configError("DeletionNamePattern", errors.New(op).Err(err).Msg(errMsgDeletionPattern))
	}

	return nil
}
