// Package main runs the stateless solver as an AWS Lambda function behind an
// API Gateway HTTP API. Configuration comes from the environment only.
package main

import (
	"context"
	"log"

	"armsim/internal/config"
	"armsim/internal/lambdafn"
	"armsim/pkg/logger"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatal("could not load config: ", err)
	}
	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not set up logger: ", err)
	}

	ctx := context.Background()
	logger.Info(ctx, "starting lambda handler", zap.Float64("max_link_length", cfg.Simulator.MaxLinkLength))

	h := lambdafn.New(lambdafn.NewOptions(cfg))
	lambda.Start(h.Handle)
}
