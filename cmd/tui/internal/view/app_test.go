package view

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtmarsh/budgeteer/internal/apiclient"
)

func testClient(t *testing.T) *apiclient.Client {
	t.Helper()

	c, err := apiclient.New("http://localhost:8000", time.Second)
	require.NoError(t, err)

	return c
}

func TestApp_VerifiedForcesDashboard(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	// Even mid account creation a verified session wins.
	next, _ := app.Update(SwitchToSignupMsg{})
	app = next.(AppModel)
	require.Equal(t, pageSignup, app.page)

	next, _ = app.Update(verifyResultMsg{ok: true})
	app = next.(AppModel)
	assert.Equal(t, pageDashboard, app.page)
}

func TestApp_VerifiedIsIdempotentOnDashboard(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, _ := app.Update(verifyResultMsg{ok: true})
	app = next.(AppModel)
	require.Equal(t, pageDashboard, app.page)

	next, cmd := app.Update(verifyResultMsg{ok: true})
	app = next.(AppModel)
	assert.Equal(t, pageDashboard, app.page)
	assert.Nil(t, cmd)
}

func TestApp_RejectedVerifyDropsToLogin(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, _ := app.Update(verifyResultMsg{ok: true})
	app = next.(AppModel)
	require.Equal(t, pageDashboard, app.page)

	next, _ = app.Update(verifyResultMsg{ok: false})
	app = next.(AppModel)
	assert.Equal(t, pageLogin, app.page)
	assert.NotEmpty(t, app.login.status)
}

func TestApp_RejectedVerifyWhileLoggedOutIsNoOp(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, cmd := app.Update(verifyResultMsg{ok: false})
	app = next.(AppModel)
	assert.Equal(t, pageLogin, app.page)
	assert.Nil(t, cmd)
}

func TestApp_FailedLoginStaysLoggedOutWithMessage(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, _ := app.Update(loginResultMsg{err: errors.New("401")})
	app = next.(AppModel)

	assert.Equal(t, pageLogin, app.page)
	assert.Equal(t, "Invalid email or password.", app.login.status)
}

func TestApp_SignupCancelReturnsToLoginAndClearsSession(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, _ := app.Update(SwitchToSignupMsg{})
	app = next.(AppModel)

	next, cmd := app.Update(SignupCancelledMsg{})
	app = next.(AppModel)

	assert.Equal(t, pageLogin, app.page)
	// The logout call is fired alongside the page switch.
	assert.NotNil(t, cmd)
}

func TestApp_LogoutReturnsToLogin(t *testing.T) {
	app := NewApp(testClient(t), time.Minute)

	next, _ := app.Update(verifyResultMsg{ok: true})
	app = next.(AppModel)
	require.Equal(t, pageDashboard, app.page)

	next, _ = app.Update(LoggedOutMsg{})
	app = next.(AppModel)
	assert.Equal(t, pageLogin, app.page)
}
