package providers

import (
	"github.com/samber/do/v2"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideServices provides the business service bundle.
func ProvideServices(i do.Injector) (*service.Services, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.New(storeHandle.Store, tokens, validator, log.Logger), nil
}
