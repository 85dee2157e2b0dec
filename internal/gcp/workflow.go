package gcp

import (
	"context"
	"encoding/json"
	"fmt"

	executions "cloud.google.com/go/workflows/executions/apiv1"
	"cloud.google.com/go/workflows/executions/apiv1/executionspb"

	"github.com/jmadden/videojobs/internal/models"
)

// WorkflowClient starts executions of the video-processing workflow.
type WorkflowClient struct {
	client *executions.Client
	parent string
}

// NewWorkflowClient creates a WorkflowClient for the workflow identified by
// project, location and workflow ID.
func NewWorkflowClient(client *executions.Client, projectID, location, workflowID string) *WorkflowClient {
	return &WorkflowClient{
		client: client,
		parent: fmt.Sprintf("projects/%s/locations/%s/workflows/%s", projectID, location, workflowID),
	}
}

// StartProcessing launches one workflow execution with the request as its
// argument. The workflow invokes the video-processor function with the same
// payload.
func (c *WorkflowClient) StartProcessing(ctx context.Context, req *models.ProcessVideoRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow payload: %w", err)
	}
	_, err = c.client.CreateExecution(ctx, &executionspb.CreateExecutionRequest{
		Parent: c.parent,
		Execution: &executionspb.Execution{
			Argument: string(payload),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start workflow execution: %w", err)
	}
	return nil
}
