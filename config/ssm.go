package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// MergeSSM overlays parameters stored under prefix in AWS SSM Parameter
// Store onto c. Parameter names are mapped to env-style keys:
// "/roboarchive/prod/jwt-secret" with prefix "/roboarchive/prod/"
// becomes "JWT_SECRET". Values already present in c are overwritten,
// so deployed secrets win over .env defaults.
func (c Config) MergeSSM(ctx context.Context, prefix string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("fetching SSM parameters under %s: %w", prefix, err)
		}
		for _, param := range page.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			c[envKey(*param.Name, prefix)] = *param.Value
		}
	}

	return nil
}

func envKey(name, prefix string) string {
	key := strings.TrimPrefix(name, prefix)
	key = strings.Trim(key, "/")
	key = strings.NewReplacer("/", "_", "-", "_").Replace(key)
	return strings.ToUpper(key)
}
