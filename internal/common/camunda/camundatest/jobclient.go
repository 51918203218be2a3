// Package camundatest provides an in-memory worker.JobClient for handler tests.
package camundatest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient records every command a handler sends. CompleteErrs are returned,
// in order, by the first CompleteJob calls.
type JobClient struct {
	pb.GatewayClient

	mu           sync.Mutex
	CompleteErrs []error
	Completed    []*pb.CompleteJobRequest
	Failed       []*pb.FailJobRequest
	Thrown       []*pb.ThrowErrorRequest
	completeRuns int
}

func NewJobClient() *JobClient {
	return &JobClient{}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c, noRetry)
}

func (c *JobClient) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.completeRuns++
	if len(c.CompleteErrs) > 0 {
		err := c.CompleteErrs[0]
		c.CompleteErrs = c.CompleteErrs[1:]
		return nil, err
	}
	c.Completed = append(c.Completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (c *JobClient) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Failed = append(c.Failed, in)
	return &pb.FailJobResponse{}, nil
}

func (c *JobClient) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Thrown = append(c.Thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

// CompleteAttempts counts CompleteJob calls, failed ones included.
func (c *JobClient) CompleteAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completeRuns
}

// CompletedVariables decodes the variables of the i-th completed job.
func (c *JobClient) CompletedVariables(i int) (map[string]interface{}, error) {
	c.mu.Lock()
	raw := c.Completed[i].Variables
	c.mu.Unlock()

	var vars map[string]interface{}
	err := json.Unmarshal([]byte(raw), &vars)
	return vars, err
}

// NewJob builds an activated job with the given variables and retries left.
func NewJob(key int64, jobType string, retries int32, variables interface{}) entities.Job {
	raw, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               jobType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "nlq-assistant",
		ElementId:          "Activity_" + jobType,
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            retries,
		Variables:          string(raw),
	}}
}
