package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"miwalavie-store/internal/core/server"
	"miwalavie-store/internal/service"
	mdw "miwalavie-store/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：商品、用户、订单管理。
// 整组路由硬性要求管理员（未登录 → 登录跳转提示，非管理员 → 403）
func NewAdminEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20), // 商品图片也从这里走
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWT, true))
	mountAdminActions(admin, d)

	return r
}

func mountAdminActions(admin *gin.RouterGroup, d Deps) {
	ez := New(admin)

	ez.GET("/", func(c *gin.Context) (any, error) {
		return gin.H{"sections": []string{"products", "users", "orders"}}, nil
	})

	/* ---------- 商品 ---------- */

	ez.GET("/products", func(c *gin.Context) (any, error) {
		return d.Catalog.List(c.Request.Context())
	})

	// multipart：name / description / price_ngn / image。
	// 缺任何一项整单拒绝，不落半条记录
	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: BindNone,
		Msg:    "Product added.",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			name := strings.TrimSpace(c.PostForm("name"))
			description := strings.TrimSpace(c.PostForm("description"))
			priceRaw := strings.TrimSpace(c.PostForm("price_ngn"))
			fh, fileErr := c.FormFile("image")

			if name == "" || description == "" || priceRaw == "" || fileErr != nil {
				return nil, BadRequest("Name, description, price, and an image are required.")
			}
			price, err := service.ParsePrice(priceRaw)
			if err != nil {
				return nil, err
			}
			imagePath, err := saveUpload(c, fh, d.UploadDir)
			if err != nil {
				return nil, err
			}
			p, err := d.Catalog.CreateProduct(c.Request.Context(), name, description, price, imagePath)
			if err != nil {
				return nil, err
			}
			return gin.H{"id": p.ID}, nil
		},
	})

	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/products/:id/delete",
		Binder: BindNone,
		Msg:    "Product deleted.",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := d.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	/* ---------- 用户 ---------- */

	ez.GET("/users", func(c *gin.Context) (any, error) {
		return d.Users.List()
	})

	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/toggle-admin",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			isAdmin, err := d.Users.ToggleAdmin(c.GetString("userId"), id)
			if err != nil {
				return nil, err
			}
			return gin.H{"id": id, "isAdmin": isAdmin}, nil
		},
	})

	/* ---------- 订单 ---------- */

	ez.GET("/orders", func(c *gin.Context) (any, error) {
		return d.Orders.ListAllWithItems()
	})
}
