package parameters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/labstack/gommon/log"
)

// ParameterSource is the subset of the SSM client used to read parameters.
type ParameterSource interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

func NewSSMSource(ctx context.Context, region string) (ParameterSource, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ExportPath reads every parameter under path (decrypted, recursively) and
// exports it as an environment variable named after the part after the path.
// "/excelbot/prod/ADMIN_ID" becomes "ADMIN_ID".
func ExportPath(ctx context.Context, src ParameterSource, path string) (int, error) {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	count := 0
	paginator := ssm.NewGetParametersByPathPaginator(src, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("unable to load parameters under %s: %w", path, err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), path)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return count, fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}

	log.Debugf("loaded %d environment variables from %s", count, path)
	return count, nil
}
