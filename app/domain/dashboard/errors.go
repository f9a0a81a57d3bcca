package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/app/utils/metrics"
)

// ErrInvalidInput marks a feature parameter the caller must fix.
var ErrInvalidInput = errors.New("invalid input")

const (
	KindIncompleteProfile = "incomplete_profile"
	KindAuth              = "auth"
	KindRateLimit         = "rate_limit"
	KindTransient         = "transient_network"
	KindMalformed         = "malformed_response"
	KindInvalidInput      = "invalid_input"

	ActionOnboarding  = "onboarding"
	ActionCheckAPIKey = "check_api_key"
	ActionRetryLater  = "retry_later"
	ActionRetry       = "retry"
	ActionFixInput    = "fix_input"
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// toError converts any failure of feature into the user-facing error payload.
func toError(feature Feature, err error) *common.Error {
	out := &common.Error{Cause: err}
	var incomplete *profile.IncompleteProfileError

	switch {
	case errors.As(err, &incomplete):
		names := make([]string, len(incomplete.Missing))
		for i, f := range incomplete.Missing {
			names[i] = string(f)
		}
		out.Kind = KindIncompleteProfile
		out.Action = ActionOnboarding
		out.Message = fmt.Sprintf("Your profile is missing: %s. Finish onboarding to continue.", strings.Join(names, ", "))
	case errors.Is(err, ErrInvalidInput), errors.Is(err, upstream.ErrInvalidRequest):
		out.Kind = KindInvalidInput
		out.Action = ActionFixInput
		out.Message = err.Error()
	case errors.Is(err, upstream.ErrAuth):
		out.Kind = KindAuth
		out.Action = ActionCheckAPIKey
		service := serviceName(err)
		out.Message = fmt.Sprintf("The %s service rejected our credentials. Check the %s API key.", service, service)
	case errors.Is(err, upstream.ErrRateLimited):
		out.Kind = KindRateLimit
		out.Action = ActionRetryLater
		out.Message = fmt.Sprintf("The %s service is busy right now. Try again shortly.", serviceName(err))
	case errors.Is(err, upstream.ErrMalformedResponse):
		out.Kind = KindMalformed
		out.Action = ActionRetry
		out.Message = "Something went wrong while preparing this view. Please try again."
	default:
		out.Kind = KindTransient
		out.Action = ActionRetry
		out.Message = fmt.Sprintf("A temporary problem reached the %s service. Try again in a moment.", serviceName(err))
	}
	out.Code = fmt.Sprintf("%s.%s", feature, out.Kind)

	metrics.ObserveFeatureFailure(string(feature), out.Kind)
	entry := logger.GetLogger().WithFields(logrus.Fields{
		"feature": feature,
		"kind":    out.Kind,
	})
	if out.Kind == KindIncompleteProfile || out.Kind == KindInvalidInput {
		entry.Infof("feature request rejected: %v", err)
	} else {
		entry.Errorf("feature failed: %v", err)
	}
	return out
}

func serviceName(err error) string {
	var target *upstream.Error
	if errors.As(err, &target) && target.Service != "" {
		return string(target.Service)
	}
	return "upstream"
}
