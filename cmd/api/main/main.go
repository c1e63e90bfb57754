//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"github.com/hirepath/payroll-api/internal/logger"
	"github.com/hirepath/payroll-api/internal/server"
	"go.uber.org/zap"
)

// @title           HirePath Payroll API
// @version         1.0
// @description     Salary and deduction calculator backing the HirePath site

// @contact.name   API Support
// @contact.email  engineering@hirepath.io

// @host      localhost:8000
// @BasePath  /api/v1

var ginLambda *ginadapter.GinLambda

func init() {
	r := gin.Default()

	server.InitializeHandlers()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.Any("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
