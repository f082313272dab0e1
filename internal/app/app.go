package app

import (
	"context"
	"log"
	"net/http"

	"github.com/Thebob0072/skillmatch-auth/internal/config"
	httpx "github.com/Thebob0072/skillmatch-auth/internal/http"
	"github.com/Thebob0072/skillmatch-auth/internal/http/handlers"
	"github.com/Thebob0072/skillmatch-auth/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.OTPSvc, container.UserRepo)
	verH := handlers.NewVerificationHandlers(container.VerificationSvc)
	polH := &handlers.PolicyHandlers{E: container.Enforcer}

	jwtMW := middleware.NewAuthMW(container.TokenSvc, container.SessionRepo)
	casbinMW := middleware.NewCasbinMW(container.Enforcer)

	r := httpx.BuildRouter(authH, verH, polH, jwtMW, casbinMW)

	seedPolicies(container)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role policies on a fresh database.
func seedPolicies(container *Container) {
	if len(container.PolicySvc.GetPolicies()) > 0 {
		return
	}
	seeds := [][3]string{
		{"role_admin", "/admin/verifications", "GET"},
		{"role_admin", "/admin/verifications/:id/review", "POST"},
		{"role_god", "/admin/*", "(GET|POST|DELETE)"},
	}
	for _, s := range seeds {
		if err := container.PolicySvc.AddPolicy(s[0], s[1], s[2]); err != nil {
			log.Printf("casbin: seed policy %v: %v", s, err)
		}
	}
	log.Println("casbin: seeded default policies")
}
