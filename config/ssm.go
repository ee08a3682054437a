package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterLister is the slice of the SSM client used to read parameters.
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM overlays every parameter stored under SSM_PARAMETER_PATH onto the
// config map. Keys already present in the environment win. The parameter name
// relative to the path becomes the key, e.g. /portfolio/prod/SESSION_SECRET.
func LoadSSM(ctx context.Context, config map[string]string) error {
	prefix := GetString(config, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	return overlayParameters(ctx, ssm.NewFromConfig(awsCfg), prefix, config)
}

func overlayParameters(ctx context.Context, client ParameterLister, prefix string, config map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("read ssm parameters under %s: %w", prefix, err)
		}

		for _, p := range page.Parameters {
			key := path.Base(aws.ToString(p.Name))
			if key == "" || key == "/" || key == "." {
				continue
			}
			key = strings.ToUpper(key)
			if _, exists := config[key]; exists {
				continue
			}
			config[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", prefix).Int("parameters", loaded).Msg("Loaded configuration from SSM")
	return nil
}
