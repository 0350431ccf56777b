package actions

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/relloyd/deltapipe/config"
)

// LambdaHandler returns a handler for lambda.Start that treats the invocation payload as a trigger.
func LambdaHandler(r *Runner) func(ctx context.Context, t config.Trigger) (RunResult, error) {
	return func(ctx context.Context, t config.Trigger) (RunResult, error) {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			r.Log.Info("handling lambda request ", lc.AwsRequestID)
		}
		return r.Run(ctx, t)
	}
}
