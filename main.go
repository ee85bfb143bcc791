package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jhw/go-tablesim/pkg/tablesim"
	"github.com/jhw/go-tablesim/pkg/tablesim/server"
	"github.com/jhw/go-tablesim/pkg/telemetry"
)

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req tablesim.Request
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		telemetry.Warnf("lambda: bad JSON: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 400,
			Body:       `{"error": "invalid JSON body"}`,
		}, nil
	}

	result, err := tablesim.Simulate(ctx, req)
	if err != nil {
		if tablesim.IsValidationError(err) {
			body, _ := json.Marshal(map[string]string{"error": err.Error()})
			return events.APIGatewayProxyResponse{StatusCode: 422, Body: string(body)}, nil
		}
		telemetry.Errorf("lambda: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       `{"error": "internal error"}`,
		}, nil
	}

	responseBody, err := json.Marshal(result)
	if err != nil {
		telemetry.Errorf("lambda: marshal response: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       `{"error": "internal error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(responseBody),
	}, nil
}

func runServer() {
	cfg := server.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	srv, err := server.New(cfg)
	if err != nil {
		telemetry.Errorf("server: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		telemetry.Errorf("server: %v", err)
		os.Exit(1)
	}
}

func runCLI() {
	filename := os.Args[1]
	iterations := 0
	seed := int64(0)

	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--iterations="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--iterations="))
			if err != nil {
				telemetry.Errorf("invalid iterations: %s", arg)
				os.Exit(1)
			}
			iterations = n
		case strings.HasPrefix(arg, "--seed="):
			n, err := strconv.ParseInt(strings.TrimPrefix(arg, "--seed="), 10, 64)
			if err != nil {
				telemetry.Errorf("invalid seed: %s", arg)
				os.Exit(1)
			}
			seed = n
		default:
			telemetry.Errorf("unknown argument: %s", arg)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		telemetry.Errorf("read %s: %v", filename, err)
		os.Exit(1)
	}

	var req tablesim.Request
	if err := json.Unmarshal(data, &req); err != nil {
		telemetry.Errorf("parse %s: %v", filename, err)
		os.Exit(1)
	}
	if iterations > 0 {
		req.Iterations = iterations
	}
	if seed != 0 {
		req.Seed = seed
	}

	telemetry.Infof("processing %s: %d teams, %d matches, %d iterations", filename, req.TeamCount(), len(req.Schedule), req.Iterations)

	result, err := tablesim.Simulate(context.Background(), req)
	if err != nil {
		telemetry.Errorf("simulate: %v", err)
		os.Exit(1)
	}

	telemetry.Infof("%d iterations in %dms", result.SimulationsPerformed, result.TimeMs)
	telemetry.Infof("teams (strongest first):")
	for i, name := range result.TeamNames {
		probs := result.ProbabilityMatrix[i]
		telemetry.Infof("- %s: expected rank %.2f, P(1st) %.3f, P(last) %.3f",
			name, result.ExpectedRanks[i], probs[0], probs[len(probs)-1])
	}
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServer()
		case "demo":
			runDemo()
		default:
			runCLI()
		}
		return
	}

	lambda.Start(handleRequest)
}
