package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/learnhub/internal/config"
	"github.com/user/learnhub/internal/middleware"
	"github.com/user/learnhub/internal/repository"
	"github.com/user/learnhub/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Authenticator    *middleware.Authenticator
	AuthService      *service.AuthService
	DashboardService *service.DashboardService
	CourseService    *service.CourseService
	VideoService     *service.VideoService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config, authn *middleware.Authenticator) *Handler {
	registerJSONFieldNames()

	return &Handler{
		Authenticator:    authn,
		AuthService:      service.NewAuthService(repos.User, authn),
		DashboardService: service.NewDashboardService(repos.Dashboard),
		CourseService:    service.NewCourseService(repos.Course, cfg.Labels, cfg.CourseDurationUnit),
		VideoService:     service.NewVideoService(repos.Video, cfg.VideoListLimit),
	}
}

var registerOnce sync.Once

// registerJSONFieldNames 校验错误中使用 json 字段名而不是结构体字段名
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindingMessage 把绑定错误转换为客户端可读的提示
//
// 缺少必填字段或请求体无法解析时返回 missing；其余校验失败逐字段说明。
func bindingMessage(err error, missing string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return missing
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return missing
		case "gt":
			parts = append(parts, fe.Field()+" must be greater than "+fe.Param())
		case "gte":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
