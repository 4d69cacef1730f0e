package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/roach88/arbiter/internal/tree"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// OpenAIClient implements Client over the OpenAI chat completions API,
// using function-calling tool schemas so every capability returns a
// structured record instead of free text.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from an explicit key and model.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// NewOpenAIClientFromEnv reads OPENAI_API_KEY and OPENAI_MODEL.
func NewOpenAIClientFromEnv() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = DefaultModel
		slog.Debug("OPENAI_MODEL not set, using default", "model", DefaultModel)
	}
	return NewOpenAIClient(apiKey, model), nil
}

// ExtractConstraints implements Client.
func (o *OpenAIClient) ExtractConstraints(ctx context.Context, promptTemplate string) ([]ConstraintRecord, error) {
	args, err := o.callTool(ctx, "extract",
		extractSystemPrompt,
		"Prompt template:\n"+promptTemplate,
		"classify_constraints_from_prompt",
		"Extract and classify constraints from a single prompt template.",
		extractToolSchema)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Constraints []ConstraintRecord `json:"constraints"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, newUpstreamError("extract", "malformed tool arguments", err)
	}
	return payload.Constraints, nil
}

// AssessCondition implements Client.
func (o *OpenAIClient) AssessCondition(ctx context.Context, promptTemplate string, rec ConstraintRecord) (bool, error) {
	user, err := json.MarshalIndent(map[string]string{
		"prompt":     promptTemplate,
		"constraint": rec.Constraint,
		"source":     rec.Source,
	}, "", "  ")
	if err != nil {
		return false, newUpstreamError("assess", "failed to encode request", err)
	}

	args, err := o.callTool(ctx, "assess",
		assessSystemPrompt,
		string(user),
		"assess_single_conditional_condition",
		"Assess whether ONE conditional constraint's condition is code-verifiable (semantics-agnostic).",
		assessToolSchema)
	if err != nil {
		return false, err
	}

	var payload struct {
		Assessment struct {
			ConditionVerifiable bool `json:"condition_verifiable"`
		} `json:"assessment"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return false, newUpstreamError("assess", "malformed tool arguments", err)
	}
	return payload.Assessment.ConditionVerifiable, nil
}

// GenerateTree implements Client. The returned tree has already passed
// schema and well-formedness validation; a malformed oracle tree is an
// UpstreamError, not a tree the caller has to defend against.
func (o *OpenAIClient) GenerateTree(ctx context.Context, promptTemplate string, constraints []ConstraintRecord) (tree.Node, error) {
	constraintJSON, err := json.MarshalIndent(constraints, "", "  ")
	if err != nil {
		return nil, newUpstreamError("tree", "failed to encode constraints", err)
	}

	args, err := o.callTool(ctx, "tree",
		treeSystemPrompt,
		fmt.Sprintf("Prompt:\n%s\n\nConstraints:\n%s", promptTemplate, constraintJSON),
		"generate_constraint_check_tree",
		"Generate a logic tree to verify the output against a list of constraints.",
		treeToolSchema)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Tree json.RawMessage `json:"tree"`
	}
	if err := json.Unmarshal(args, &payload); err != nil || len(payload.Tree) == 0 {
		return nil, newUpstreamError("tree", "malformed tool arguments", err)
	}

	root, err := tree.Decode(payload.Tree)
	if err != nil {
		return nil, newUpstreamError("tree", "oracle produced a malformed tree", err)
	}
	return root, nil
}

// GenerateValidator implements Client.
func (o *OpenAIClient) GenerateValidator(ctx context.Context, promptTemplate string, root tree.Node) (string, error) {
	treeJSON, err := tree.Encode(root)
	if err != nil {
		return "", newUpstreamError("validator", "failed to encode tree", err)
	}

	args, err := o.callTool(ctx, "validator",
		validatorSystemPrompt,
		fmt.Sprintf("Prompt: %s\n\nEvaluation Tree:\n%s", promptTemplate, treeJSON),
		"generate_output_checker_code",
		"Generate a Go function that returns (bool, reason, violation) when verifying output using a constraint evaluation tree.",
		validatorToolSchema)
	if err != nil {
		return "", err
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return "", newUpstreamError("validator", "malformed tool arguments", err)
	}
	if payload.Code == "" {
		return "", newUpstreamError("validator", "oracle returned empty validator source", nil)
	}
	return payload.Code, nil
}

// callTool issues one forced tool call and returns the raw arguments.
func (o *OpenAIClient) callTool(ctx context.Context, capability, system, user, toolName, toolDesc, schema string) (json.RawMessage, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolName,
				Description: toolDesc,
				Parameters:  json.RawMessage(schema),
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: toolName},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, newUpstreamError(capability, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, newUpstreamError(capability, "response carried no tool call", nil)
	}

	slog.Debug("oracle tool call completed",
		"capability", capability,
		"model", o.model,
		"finish_reason", resp.Choices[0].FinishReason,
	)
	return json.RawMessage(resp.Choices[0].Message.ToolCalls[0].Function.Arguments), nil
}
