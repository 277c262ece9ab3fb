package auth

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hiring-service/internal/domain"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

// RequirementKind enumerates what a route demands of the caller.
type RequirementKind int

const (
	RequirePublic RequirementKind = iota
	RequireAuthenticated
	RequireRole
)

// Requirement is the access condition attached to a rule.
type Requirement struct {
	Kind RequirementKind
	Role domain.Role
}

func Public() Requirement        { return Requirement{Kind: RequirePublic} }
func Authenticated() Requirement { return Requirement{Kind: RequireAuthenticated} }

// HasRole requires an authenticated caller holding role.
func HasRole(role domain.Role) Requirement {
	return Requirement{Kind: RequireRole, Role: role}
}

func (r Requirement) String() string {
	switch r.Kind {
	case RequirePublic:
		return "public"
	case RequireAuthenticated:
		return "authenticated"
	case RequireRole:
		return "role:" + string(r.Role)
	default:
		return "unknown"
	}
}

// Rule maps a method and path pattern to a requirement. An empty Method
// matches any method. Patterns use doublestar syntax.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

func (r Rule) matches(method, reqPath string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	ok, err := doublestar.Match(r.Pattern, reqPath)
	return err == nil && ok
}

// DefaultRules is the route table of the public API. Order is significant:
// the first matching rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/register", Requirement: Public()},
		{Pattern: "/login", Requirement: Public()},
		{Pattern: "/posts/search/**", Requirement: Public()},
		{Pattern: "/posts/all", Requirement: Public()},
		{Method: http.MethodPost, Pattern: "/posts/add", Requirement: HasRole(domain.RoleRecruiter)},
		{Method: http.MethodPost, Pattern: "/candidate/profile", Requirement: HasRole(domain.RoleJobSeeker)},
		{Method: http.MethodGet, Pattern: "/candidate/profile/**", Requirement: Authenticated()},
		{Method: http.MethodPost, Pattern: "/posts/apply/**", Requirement: HasRole(domain.RoleJobSeeker)},
		{Pattern: "/health/**", Requirement: Public()},
		{Pattern: "/**", Requirement: Authenticated()},
	}
}

// Decision is the result of evaluating the policy for a request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

// Verdict pairs a decision with a human readable reason.
type Verdict struct {
	Decision Decision
	Reason   string
}

// Policy is an immutable ordered rule list.
type Policy struct {
	rules []Rule
}

// NewPolicy validates and copies rules.
func NewPolicy(rules []Rule) (*Policy, error) {
	copied := make([]Rule, len(rules))
	for i, rule := range rules {
		if !doublestar.ValidatePattern(rule.Pattern) {
			return nil, fmt.Errorf("rule %d: invalid pattern %q", i, rule.Pattern)
		}
		switch rule.Requirement.Kind {
		case RequirePublic, RequireAuthenticated:
		case RequireRole:
			if !rule.Requirement.Role.Valid() {
				return nil, fmt.Errorf("rule %d: unknown role %q", i, rule.Requirement.Role)
			}
		default:
			return nil, fmt.Errorf("rule %d: unknown requirement kind %d", i, rule.Requirement.Kind)
		}
		copied[i] = rule
	}
	return &Policy{rules: copied}, nil
}

// Requirement returns the requirement of the first rule matching the request.
// Requests no rule covers require authentication.
func (p *Policy) Requirement(method, reqPath string) Requirement {
	reqPath = normalizePath(reqPath)
	for _, rule := range p.rules {
		if rule.matches(method, reqPath) {
			return rule.Requirement
		}
	}
	return Authenticated()
}

// Evaluate decides whether principal may access the route. A nil principal
// means the request is anonymous.
func (p *Policy) Evaluate(method, reqPath string, principal *domain.Principal) Verdict {
	req := p.Requirement(method, reqPath)
	switch req.Kind {
	case RequirePublic:
		return Verdict{Decision: DecisionAllow}
	case RequireAuthenticated:
		if principal == nil {
			return Verdict{Decision: DecisionUnauthenticated, Reason: "Full authentication is required to access this resource"}
		}
		return Verdict{Decision: DecisionAllow}
	case RequireRole:
		if principal == nil {
			return Verdict{Decision: DecisionUnauthenticated, Reason: "Full authentication is required to access this resource"}
		}
		if principal.Role != req.Role {
			return Verdict{Decision: DecisionForbidden, Reason: "requires role " + string(req.Role)}
		}
		return Verdict{Decision: DecisionAllow}
	default:
		return Verdict{Decision: DecisionForbidden, Reason: "unrecognised access rule"}
	}
}

// Handle enforces the policy for the current request.
func (p *Policy) Handle(c *fiber.Ctx) error {
	var principal *domain.Principal
	if bound, ok := CurrentPrincipal(c); ok {
		principal = &bound
	}

	verdict := p.Evaluate(c.Method(), c.Path(), principal)
	switch verdict.Decision {
	case DecisionAllow:
		return c.Next()
	case DecisionUnauthenticated:
		return apperrors.NewUnauthorized(verdict.Reason)
	default:
		return apperrors.NewForbidden(verdict.Reason)
	}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
