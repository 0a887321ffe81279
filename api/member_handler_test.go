package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/roboarchive/roboarchive-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/members/", "/api/members/1", "/api/members/1/stats"} {
		rec := env.do(http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	rec := env.do(http.MethodGet, "/api/members/", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAllMembers(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.seedMember(t, "ada@club.dev", models.PrivilegeStandard)
	env.seedMember(t, "grace@club.dev", models.PrivilegeLeader)

	rec := env.do(http.MethodGet, "/api/members/", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var members []models.Member
	decodeBody(t, rec, &members)
	assert.Len(t, members, 2)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetMemberNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, bearer := env.seedMember(t, "ada@club.dev", models.PrivilegeStandard)

	rec := env.do(http.MethodGet, "/api/members/99", bearer, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemberMutationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	member, standard := env.seedMember(t, "ada@club.dev", models.PrivilegeStandard)
	_, leader := env.seedMember(t, "grace@club.dev", models.PrivilegeLeader)
	_, admin := env.seedMember(t, "root@club.dev", models.PrivilegeAdministrator)

	target := "/api/members/1"

	rec := env.doJSON(t, http.MethodPut, target, standard, map[string]any{"role": "driver"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Leaders sit below administrators in the privilege ordering.
	rec = env.doJSON(t, http.MethodPut, target, leader, map[string]any{"role": "driver"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodPut, target, admin, map[string]any{"role": "driver"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Member
	decodeBody(t, rec, &updated)
	assert.Equal(t, "driver", updated.Role)
	assert.Equal(t, member.Name, updated.Name, "absent fields keep their stored values")

	rec = env.do(http.MethodDelete, target, standard, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodDelete, target, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := env.members.FindByID(context.Background(), member.ID)
	assert.Error(t, err)
}

func TestUpdateMemberPrivilegeLevel(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, "ada@club.dev", models.PrivilegeStandard)
	_, admin := env.seedMember(t, "root@club.dev", models.PrivilegeAdministrator)

	rec := env.doJSON(t, http.MethodPut, "/api/members/1", admin, map[string]any{
		"privilege_level": "leader",
		"is_active":       false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Member
	decodeBody(t, rec, &updated)
	assert.Equal(t, models.PrivilegeLeader, updated.PrivilegeLevel)
	assert.False(t, updated.IsActive)
}

func TestDeleteMemberNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedMember(t, "root@club.dev", models.PrivilegeAdministrator)

	rec := env.do(http.MethodDelete, "/api/members/42", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMemberStats(t *testing.T) {
	env := newTestEnv(t)
	member, bearer := env.seedMember(t, "ada@club.dev", models.PrivilegeStandard)

	rec := env.do(http.MethodGet, "/api/members/1/stats", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A member with no activity reports explicit zeros, not nulls.
	assert.JSONEq(t, `{"completed_tasks":0,"articles_written":0,"robots_led":0}`, rec.Body.String())

	env.members.StatsFunc = func(ctx context.Context, id uint) (*models.MemberStats, error) {
		assert.Equal(t, member.ID, id)
		return &models.MemberStats{CompletedTasks: 3, ArticlesWritten: 2, RobotsLed: 1}, nil
	}

	rec = env.do(http.MethodGet, "/api/members/1/stats", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completed_tasks":3,"articles_written":2,"robots_led":1}`, rec.Body.String())
}
