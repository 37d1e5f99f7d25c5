package cli

import (
	"errors"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/jacentio/todos/gateway"
)

func newLambdaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the Todo API as an AWS Lambda function behind API Gateway",
		Long: `Starts the Lambda runtime loop. Each warm execution environment keeps its
own in-memory store, so state is neither shared between concurrent
environments nor kept across cold starts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp(cmd)
			if a == nil {
				return errors.New("lambda: not initialized")
			}
			gw := gateway.NewHandler(a.handler, a.logger)
			lambda.StartWithOptions(gw.Handle, lambda.WithContext(cmd.Context()))
			return nil
		},
	}
}
