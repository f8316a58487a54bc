package awsctx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options controls how the AWS context is resolved.
type Options struct {
	Log *zap.SugaredLogger

	// Region overrides the region from the AWS config resolution chain.
	Region string
	// Profile selects a shared config profile.
	Profile string
	// AccountID skips the STS caller identity lookup when set.
	AccountID string
	// AssumeRoleARN is an optional IAM role assumed for all AWS calls.
	AssumeRoleARN string
}

// Context is a resolved AWS environment: the SDK config to build service
// clients from, plus the account and region it points at.
type Context struct {
	Config    aws.Config
	Region    string
	AccountID string
}

// STSAPI is the subset of the STS client used to resolve the caller account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var _ STSAPI = (*sts.Client)(nil)

// Load resolves the AWS config honoring the region and profile overrides,
// wraps credentials with an assumed role if one is given, and fills in the
// account ID from STS when it wasn't supplied.
func Load(ctx context.Context, opts Options) (*Context, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	if cfg.Region == "" {
		return nil, errors.New("no AWS region configured: pass -region or set one in your AWS config")
	}

	svc := sts.NewFromConfig(cfg)

	if opts.AssumeRoleARN != "" {
		opts.Log.With("role", opts.AssumeRoleARN).Info("assuming role")
		creds := stscreds.NewAssumeRoleProvider(svc, opts.AssumeRoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = roleSessionName()
		})
		cfg.Credentials = aws.NewCredentialsCache(creds)

		// rebuild the STS client so the identity lookup below runs as
		// the assumed role
		svc = sts.NewFromConfig(cfg)
	}

	account := opts.AccountID
	if account == "" {
		account, err = callerAccount(ctx, svc)
		if err != nil {
			return nil, err
		}
		opts.Log.With("account", account).Debug("resolved account from caller identity")
	}

	return &Context{
		Config:    cfg,
		Region:    cfg.Region,
		AccountID: account,
	}, nil
}

func callerAccount(ctx context.Context, svc STSAPI) (string, error) {
	out, err := svc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", errors.Wrap(err, "getting caller identity")
	}
	return aws.ToString(out.Account), nil
}

func roleSessionName() string {
	return "cfnctl-" + uuid.NewString()
}
