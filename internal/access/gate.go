package access

import (
	"net/http"

	"github.com/Falasefemi2/hr-portal/internal/identity"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const modelConf = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

//go:generate mockgen -source=gate.go -destination=mock/gate_mock.go -package=mock
type Gate interface {
	Check(p identity.Principal, op Operation) error
}

type gate struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewGate loads policy into an in-memory casbin enforcer.
func NewGate(policy Policy, logger ...*zap.Logger) (Gate, error) {
	l := zap.L().Named("access.gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.gate")
	}

	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	rules := make([][]string, 0, len(policy)*3)
	for op, roles := range policy {
		for _, r := range roles {
			rules = append(rules, []string{string(r), string(op)})
		}
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, err
		}
	}
	l.Debug("access policy loaded", zap.Int("rules", len(rules)))

	return &gate{enforcer: enforcer, logger: l}, nil
}

func (g *gate) Check(p identity.Principal, op Operation) error {
	role, err := roleOf(p)
	if err != nil {
		return err
	}

	allowed, err := g.enforcer.Enforce(role, string(op))
	if err != nil {
		g.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("operation", string(op)),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.CodeInternalError, "Internal server error", http.StatusInternalServerError)
	}
	if !allowed {
		g.logger.Debug("access denied",
			zap.String("employee_id", p.Caller.EmployeeID),
			zap.String("role", role),
			zap.String("operation", string(op)),
		)
		return ErrForbidden
	}
	return nil
}
