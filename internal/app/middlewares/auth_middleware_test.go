package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	accountID   int64
	action      string
	targetTable string
}

type captureRecorder struct {
	events chan recordedEvent
}

func (r *captureRecorder) Record(accountID *int64, action, targetTable, sourceIP string) {
	var id int64
	if accountID != nil {
		id = *accountID
	}
	r.events <- recordedEvent{accountID: id, action: action, targetTable: targetTable}
}

func TestRequireRolesRedirectsAnonymousToLogin(t *testing.T) {
	m := NewAuthMiddleware(nil, nil)

	app := fiber.New()
	app.Get("/admin/users", m.RequireRoles(rbac.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	m := NewAuthMiddleware(nil, nil)

	app := fiber.New()
	app.Get("/admin/users",
		func(c *fiber.Ctx) error {
			c.Locals(principalKey, &rbac.Principal{AccountID: 1, Role: "admin"})
			return c.Next()
		},
		m.RequireRoles(rbac.RoleAdmin),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRolesForbiddenRedirectsAndRecordsDenial(t *testing.T) {
	recorder := &captureRecorder{events: make(chan recordedEvent, 1)}
	m := NewAuthMiddleware(nil, recorder)

	app := fiber.New()
	app.Get("/admin/users",
		func(c *fiber.Ctx) error {
			c.Locals(principalKey, &rbac.Principal{AccountID: 7, Role: "CUSTOMER"})
			return c.Next()
		},
		m.RequireRoles(rbac.RoleAdmin),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/users", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, AccessDeniedPath, resp.Header.Get("Location"))

	// The denial is recorded asynchronously with the requested path and the
	// denied principal's account id.
	select {
	case ev := <-recorder.events:
		assert.Equal(t, int64(7), ev.accountID)
		assert.Equal(t, "ACCESS_DENIED: /admin/users", ev.action)
		assert.Equal(t, models.AuditTargetAccessDenied, ev.targetTable)
	case <-time.After(time.Second):
		t.Fatal("denied request did not record an audit event")
	}
}

func TestPrincipalNilForAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, Principal(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	resp.Body.Close()
}
