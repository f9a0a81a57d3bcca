package admin

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

func registerWithAdminKey(t *testing.T, key string) *logtest.Hook {
	t.Helper()
	gin.SetMode(gin.TestMode)

	previousKey := environment_variables.EnvironmentVariables.ADMIN_API_KEY
	environment_variables.EnvironmentVariables.ADMIN_API_KEY = key
	log := logger.GetLogger()
	previousLevel := log.GetLevel()
	log.SetLevel(logrus.InfoLevel)
	hook := logtest.NewLocal(log)
	t.Cleanup(func() {
		environment_variables.EnvironmentVariables.ADMIN_API_KEY = previousKey
		log.SetLevel(previousLevel)
		hook.Reset()
	})

	route := NewCacheRoute(responsecache.New(cache.NewMemoryCacheService(), time.Minute))
	route.RegisterRouter(gin.New().Group("/v1"))
	return hook
}

func TestRegisterRouter_WarnsWhenAdminKeyUnset(t *testing.T) {
	hook := registerWithAdminKey(t, "")

	var warned *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = entry
		}
	}
	require.NotNil(t, warned)
	assert.Contains(t, warned.Message, "ADMIN_API_KEY")
}

func TestRegisterRouter_QuietWhenAdminKeySet(t *testing.T) {
	hook := registerWithAdminKey(t, "secret")

	for _, entry := range hook.AllEntries() {
		assert.NotContains(t, entry.Message, "ADMIN_API_KEY")
	}
}
