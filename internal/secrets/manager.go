package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/tokenforge/authapi/internal/common"
)

// ClientConfig carries the settings needed to reach the secret store.
// Endpoint is optional and exists for local stacks (e.g. localstack);
// when AccessKeyID is empty the SDK default credential chain is used.
type ClientConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// ManagerClient implements Store on top of AWS Secrets Manager.
// The client is safe for concurrent use.
type ManagerClient struct {
	client *secretsmanager.Client
}

func NewManagerClient(ctx context.Context, cfg ClientConfig) (*ManagerClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secret store config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awscfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &ManagerClient{client: client}, nil
}

// AccessSecret fetches one secret version. Any store failure surfaces as
// common.ErrSecretUnavailable; the underlying cause is kept in the message,
// the payload is never part of an error or a log line.
func (c *ManagerClient) AccessSecret(ctx context.Context, projectID, name, version string) ([]byte, error) {
	in := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(SecretID(projectID, name)),
	}
	if stage := VersionStage(version); stage != "" {
		in.VersionStage = aws.String(stage)
	}

	out, err := c.client.GetSecretValue(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("access secret %s/%s: %w: %v", projectID, name, common.ErrSecretUnavailable, err)
	}

	if out.SecretString != nil {
		return []byte(*out.SecretString), nil
	}
	return out.SecretBinary, nil
}

// SecretID builds the store-side identifier for a named secret.
func SecretID(projectID, name string) string {
	if projectID == "" {
		return name
	}
	return projectID + "/" + name
}

// VersionStage maps the configured secret version to a Secrets Manager
// staging label. "latest" and "" select the current version, which is the
// store default, so no explicit stage is requested for them.
func VersionStage(version string) string {
	if version == "" || version == "latest" {
		return ""
	}
	return version
}
