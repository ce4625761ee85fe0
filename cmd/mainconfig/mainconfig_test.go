package mainconfig

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/wolfman30/lead-webhook/internal/config"
)

func TestLoadAWSConfigStaticCredentials(t *testing.T) {
	cfg := &appconfig.Config{
		AWSRegion:          "sa-east-1",
		AWSAccessKeyID:     "AKIDEXAMPLE",
		AWSSecretAccessKey: "secret",
	}
	awsCfg, err := LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("load aws config: %v", err)
	}
	if awsCfg.Region != "sa-east-1" {
		t.Fatalf("expected region sa-east-1, got %s", awsCfg.Region)
	}
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Fatalf("expected static credentials, got %s", creds.AccessKeyID)
	}
}

func TestS3OptionsEndpointOverride(t *testing.T) {
	if opts := s3Options(&appconfig.Config{}); len(opts) != 0 {
		t.Fatalf("expected no options without override")
	}

	opts := s3Options(&appconfig.Config{AWSEndpointOverride: "http://localhost:4566"})
	if len(opts) != 1 {
		t.Fatalf("expected one option, got %d", len(opts))
	}
	var o s3.Options
	opts[0](&o)
	if aws.ToString(o.BaseEndpoint) != "http://localhost:4566" {
		t.Fatalf("unexpected endpoint %q", aws.ToString(o.BaseEndpoint))
	}
	if !o.UsePathStyle {
		t.Fatalf("expected path-style addressing")
	}
}
