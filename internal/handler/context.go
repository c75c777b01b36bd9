package handler

import (
	"net/http"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	MyInfoCtx    ContextKey = "myInfo"
	UserInfoCtx  ContextKey = "userInfo"
	UnclaimedCtx ContextKey = "unclaimed"
	AreaCtx      ContextKey = "area"
	ReportCtx    ContextKey = "report"
)

// currentUser returns the signed-in user loaded by myInfo, or nil outside the authenticated group.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(MyInfoCtx).(*domain.User)
	return user
}
