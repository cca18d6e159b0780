package router

import (
	"go.uber.org/zap"

	"miwalavie-store/internal/core/auth"
	"miwalavie-store/internal/service"
)

// Deps 两个引擎共用的依赖集合；服务在 main 里组装好传进来
type Deps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Users    *service.UserService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Orders   *service.OrderService
	Messages *service.MessageService

	UploadDir string
}
