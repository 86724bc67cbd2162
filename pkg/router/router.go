package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/videodanza/backend/config"
	"github.com/videodanza/backend/pkg/logger"
	"github.com/videodanza/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context (for
// example to attach the caller principal); returning an error aborts the
// request with that error as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	Inner gin.IRouter

	cfg       config.Configs
	logger    logger.Logger
	db        *gorm.DB
	snowflake *snowflake.Node
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	r := &Router{
		Inner:     engine,
		cfg:       cfg,
		logger:    logger,
		db:        db,
		snowflake: node,
	}
	engine.Use(r.injectContext())

	return r
}

// Branch returns a router sharing the same gin group, so middlewares added
// to the branch do not affect routes registered on other branches.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:     r.Inner.Group(""),
		cfg:       r.cfg,
		logger:    r.logger,
		db:        r.db,
		snowflake: r.snowflake,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.Inner.Use(wrapMiddleware(middleware))
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(http.MethodPost, handler))
}

func (r *Router) injectContext() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqCtx := ctx.Request.Context()
		reqCtx = xcontext.WithConfigs(reqCtx, r.cfg)
		reqCtx = xcontext.WithLogger(reqCtx, r.logger)
		reqCtx = xcontext.WithDB(reqCtx, r.db)
		reqCtx = xcontext.WithSnowFlake(reqCtx, r.snowflake)
		reqCtx = xcontext.WithHTTPRequest(reqCtx, ctx.Request)
		reqCtx = xcontext.WithHTTPWriter(reqCtx, ctx.Writer)
		ctx.Request = ctx.Request.WithContext(reqCtx)
	}
}
