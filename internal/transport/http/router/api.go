package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"miwalavie-store/internal/domain"
	mdw "miwalavie-store/internal/transport/http/middleware"
)

// NewAPIEngine 店面端：目录、购物车、结账、订单会话、注册登录、自助提权
func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.Session(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	mountStoreActions(api, d)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT, false))
	mountAccountActions(authed, d)

	return r
}

func sid(c *gin.Context) string { return c.GetString(mdw.KeySessionID) }

/* ---------- 公共：目录 + 购物车 + 注册/登录 ---------- */

func mountStoreActions(api *gin.RouterGroup, d Deps) {
	ez := New(api)

	ez.GET("/products", func(c *gin.Context) (any, error) {
		return d.Catalog.List(c.Request.Context())
	})

	ez.GET("/cart", func(c *gin.Context) (any, error) {
		return d.Cart.View(c.Request.Context(), sid(c))
	})

	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/cart/add/:id",
		Binder: BindNone,
		Msg:    "Added to cart.",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			pid := c.Param("id")
			if err := d.Cart.Add(c.Request.Context(), sid(c), pid); err != nil {
				return nil, err
			}
			return gin.H{"productId": pid}, nil
		},
	})

	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/cart/remove/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			pid := c.Param("id")
			if err := d.Cart.Remove(c.Request.Context(), sid(c), pid); err != nil {
				return nil, err
			}
			return gin.H{"productId": pid}, nil
		},
	})

	// 表单键形如 qty_<productID>；没提交的条目保持原数量
	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/cart/update",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			err := d.Cart.UpdateQuantities(c.Request.Context(), sid(c), func(pid string) (string, bool) {
				return c.GetPostForm("qty_" + pid)
			})
			if err != nil {
				return nil, err
			}
			return gin.H{}, nil
		},
	})

	type credsIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type tokenOut struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}

	issue := func(u *domain.User) (tokenOut, error) {
		tok, err := d.JWT.Issue(u.ID, u.IsAdmin)
		if err != nil || tok == "" {
			return tokenOut{}, Internal("issue token failed", err)
		}
		return tokenOut{
			Token: tok,
			User:  gin.H{"id": u.ID, "email": u.Email, "isAdmin": u.IsAdmin},
		}, nil
	}

	RegisterAction(ez, Action[credsIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *credsIn) (tokenOut, error) {
			u, err := d.Users.Register(in.Email, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			return issue(u)
		},
	})

	RegisterAction(ez, Action[credsIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *credsIn) (tokenOut, error) {
			u, err := d.Users.Authenticate(in.Email, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			return issue(u)
		},
	})

	// token 无状态，登出由客户端丢弃；端点只为对称
	RegisterAction(ez, Action[struct{}, gin.H]{
		Method:  http.MethodPost,
		Path:    "/auth/logout",
		Binder:  BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) { return gin.H{}, nil },
	})
}

/* ---------- 需登录：结账、订单、会话、自助提权 ---------- */

func mountAccountActions(authed *gin.RouterGroup, d Deps) {
	ez := New(authed)

	ez.GET("/me", func(c *gin.Context) (any, error) {
		u, err := d.Users.FindByID(c.GetString("userId"))
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, NotFound("user not found")
		}
		return gin.H{"id": u.ID, "email": u.Email, "isAdmin": u.IsAdmin}, nil
	})

	RegisterAction(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/checkout",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			ctx := c.Request.Context()
			cart, err := d.Cart.Get(ctx, sid(c))
			if err != nil {
				return nil, err
			}
			orderID, err := d.Orders.Checkout(ctx, c.GetString("userId"), cart)
			if err != nil {
				return nil, err
			}
			// 成单之后才清车
			if err := d.Cart.Clear(ctx, sid(c)); err != nil {
				d.Log.Warn("clear cart after checkout failed")
			}
			return gin.H{"orderId": orderID, "chat": "/orders/" + orderID + "/chat"}, nil
		},
	})

	ez.GET("/orders", func(c *gin.Context) (any, error) {
		return d.Orders.ListForUser(c.GetString("userId"))
	})

	ez.GET("/orders/:id/chat", func(c *gin.Context) (any, error) {
		order, msgs, err := d.Messages.Thread(c.Param("id"), c.GetString("userId"), c.GetBool("isAdmin"))
		if err != nil {
			return nil, err
		}
		return gin.H{"order": order, "messages": msgs}, nil
	})

	type postMsgIn struct {
		Message string `json:"message" form:"message"`
	}
	RegisterAction(ez, Action[postMsgIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/orders/:id/chat",
		Binder: BindForm,
		Handler: func(c *gin.Context, in *postMsgIn) (gin.H, error) {
			orderID := c.Param("id")
			err := d.Messages.Post(orderID, c.GetString("userId"), c.GetBool("isAdmin"), in.Message)
			if err != nil {
				return nil, err
			}
			return gin.H{"orderId": orderID}, nil
		},
	})

	// 自助提权：有意保留的弱信任入口，确认口令正确即置 is_admin
	ez.GET("/auth/admin-claim", func(c *gin.Context) (any, error) {
		return gin.H{"confirmField": "confirm"}, nil
	})

	type claimIn struct {
		Confirm string `json:"confirm" form:"confirm"`
	}
	RegisterAction(ez, Action[claimIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/admin-claim",
		Binder: BindForm,
		Msg:    "Admin enabled for your account.",
		Handler: func(c *gin.Context, in *claimIn) (gin.H, error) {
			if err := d.Users.ClaimAdmin(c.GetString("userId"), in.Confirm); err != nil {
				return nil, err
			}
			return gin.H{"redirect": "/admin"}, nil
		},
	})
}
