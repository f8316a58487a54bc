package cleanup

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// scriptedPrompter answers confirmation prompts from a canned map and
// records every question asked. Questions without an entry answer yes.
type scriptedPrompter struct {
	answers map[string]bool
	asked   []string
	fail    error
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	if p.fail != nil {
		return false, p.fail
	}
	p.asked = append(p.asked, message)
	if answer, ok := p.answers[message]; ok {
		return answer, nil
	}
	return true, nil
}

func (p *scriptedPrompter) decline(message string) {
	if p.answers == nil {
		p.answers = map[string]bool{}
	}
	p.answers[message] = false
}

// fakes bundles one fake per service client plus the prompter and the
// output buffer the transcript is written to.
type fakes struct {
	s3       fakeS3
	ecr      fakeECR
	lambda   fakeLambda
	dynamodb fakeDynamoDB
	cfn      fakeCloudFormation
	ssm      fakeSSM
	logs     fakeLogs
	prompter scriptedPrompter
	out      bytes.Buffer
}

func buildCleaner(f *fakes, prefixes ...string) *Cleaner {
	color.NoColor = true
	return New(&Options{
		Log:            zap.NewNop().Sugar(),
		Out:            &f.out,
		Prompter:       &f.prompter,
		Prefixes:       prefixes,
		AccountID:      "123456789012",
		Region:         "ap-southeast-2",
		S3:             &f.s3,
		ECR:            &f.ecr,
		Lambda:         &f.lambda,
		DynamoDB:       &f.dynamodb,
		CloudFormation: &f.cfn,
		SSM:            &f.ssm,
		Logs:           &f.logs,
	})
}

type fakeS3 struct {
	listBuckets   func(*s3.ListBucketsInput) (*s3.ListBucketsOutput, error)
	listVersions  func(*s3.ListObjectVersionsInput) (*s3.ListObjectVersionsOutput, error)
	deleteObjects func(*s3.DeleteObjectsInput) (*s3.DeleteObjectsOutput, error)
	deleteBucket  func(*s3.DeleteBucketInput) (*s3.DeleteBucketOutput, error)

	deleteObjectsCalls int
	deleteBucketCalls  int
}

func (f *fakeS3) ListBuckets(ctx context.Context, in *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listBuckets == nil {
		return &s3.ListBucketsOutput{}, nil
	}
	return f.listBuckets(in)
}

func (f *fakeS3) ListObjectVersions(ctx context.Context, in *s3.ListObjectVersionsInput, _ ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error) {
	if f.listVersions == nil {
		return &s3.ListObjectVersionsOutput{}, nil
	}
	return f.listVersions(in)
}

func (f *fakeS3) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deleteObjectsCalls++
	if f.deleteObjects == nil {
		return &s3.DeleteObjectsOutput{}, nil
	}
	return f.deleteObjects(in)
}

func (f *fakeS3) DeleteBucket(ctx context.Context, in *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	f.deleteBucketCalls++
	if f.deleteBucket == nil {
		return &s3.DeleteBucketOutput{}, nil
	}
	return f.deleteBucket(in)
}

type fakeECR struct {
	describeRepositories func(*ecr.DescribeRepositoriesInput) (*ecr.DescribeRepositoriesOutput, error)
	deleteRepository     func(*ecr.DeleteRepositoryInput) (*ecr.DeleteRepositoryOutput, error)

	deleteRepositoryCalls int
}

func (f *fakeECR) DescribeRepositories(ctx context.Context, in *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if f.describeRepositories == nil {
		return &ecr.DescribeRepositoriesOutput{}, nil
	}
	return f.describeRepositories(in)
}

func (f *fakeECR) DeleteRepository(ctx context.Context, in *ecr.DeleteRepositoryInput, _ ...func(*ecr.Options)) (*ecr.DeleteRepositoryOutput, error) {
	f.deleteRepositoryCalls++
	if f.deleteRepository == nil {
		return &ecr.DeleteRepositoryOutput{}, nil
	}
	return f.deleteRepository(in)
}

type fakeLambda struct {
	listFunctions  func(*lambda.ListFunctionsInput) (*lambda.ListFunctionsOutput, error)
	getConfig      func(*lambda.GetFunctionConfigurationInput) (*lambda.GetFunctionConfigurationOutput, error)
	updateConfig   func(*lambda.UpdateFunctionConfigurationInput) (*lambda.UpdateFunctionConfigurationOutput, error)
	deleteFunction func(*lambda.DeleteFunctionInput) (*lambda.DeleteFunctionOutput, error)

	updateConfigCalls   int
	deleteFunctionCalls int
}

func (f *fakeLambda) ListFunctions(ctx context.Context, in *lambda.ListFunctionsInput, _ ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	if f.listFunctions == nil {
		return &lambda.ListFunctionsOutput{}, nil
	}
	return f.listFunctions(in)
}

func (f *fakeLambda) GetFunctionConfiguration(ctx context.Context, in *lambda.GetFunctionConfigurationInput, _ ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error) {
	if f.getConfig == nil {
		return &lambda.GetFunctionConfigurationOutput{}, nil
	}
	return f.getConfig(in)
}

func (f *fakeLambda) UpdateFunctionConfiguration(ctx context.Context, in *lambda.UpdateFunctionConfigurationInput, _ ...func(*lambda.Options)) (*lambda.UpdateFunctionConfigurationOutput, error) {
	f.updateConfigCalls++
	if f.updateConfig == nil {
		return &lambda.UpdateFunctionConfigurationOutput{}, nil
	}
	return f.updateConfig(in)
}

func (f *fakeLambda) DeleteFunction(ctx context.Context, in *lambda.DeleteFunctionInput, _ ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	f.deleteFunctionCalls++
	if f.deleteFunction == nil {
		return &lambda.DeleteFunctionOutput{}, nil
	}
	return f.deleteFunction(in)
}

type fakeDynamoDB struct {
	listTables    func(*dynamodb.ListTablesInput) (*dynamodb.ListTablesOutput, error)
	describeTable func(*dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
	updateTable   func(*dynamodb.UpdateTableInput) (*dynamodb.UpdateTableOutput, error)

	updateTableCalls int
}

func (f *fakeDynamoDB) ListTables(ctx context.Context, in *dynamodb.ListTablesInput, _ ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if f.listTables == nil {
		return &dynamodb.ListTablesOutput{}, nil
	}
	return f.listTables(in)
}

func (f *fakeDynamoDB) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeTable == nil {
		return &dynamodb.DescribeTableOutput{}, nil
	}
	return f.describeTable(in)
}

func (f *fakeDynamoDB) UpdateTable(ctx context.Context, in *dynamodb.UpdateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateTableOutput, error) {
	f.updateTableCalls++
	if f.updateTable == nil {
		return &dynamodb.UpdateTableOutput{}, nil
	}
	return f.updateTable(in)
}

type fakeCloudFormation struct {
	listStacks     func(*cloudformation.ListStacksInput) (*cloudformation.ListStacksOutput, error)
	describeStacks func(*cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
	deleteStack    func(*cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)

	deleteStackCalls    int
	describeStacksCalls int
}

func (f *fakeCloudFormation) ListStacks(ctx context.Context, in *cloudformation.ListStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListStacksOutput, error) {
	if f.listStacks == nil {
		return &cloudformation.ListStacksOutput{}, nil
	}
	return f.listStacks(in)
}

func (f *fakeCloudFormation) DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	f.describeStacksCalls++
	if f.describeStacks == nil {
		return &cloudformation.DescribeStacksOutput{}, nil
	}
	return f.describeStacks(in)
}

func (f *fakeCloudFormation) DeleteStack(ctx context.Context, in *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	f.deleteStackCalls++
	if f.deleteStack == nil {
		return &cloudformation.DeleteStackOutput{}, nil
	}
	return f.deleteStack(in)
}

type fakeSSM struct {
	describeParameters func(*ssm.DescribeParametersInput) (*ssm.DescribeParametersOutput, error)
	deleteParameter    func(*ssm.DeleteParameterInput) (*ssm.DeleteParameterOutput, error)

	deleteParameterCalls int
}

func (f *fakeSSM) DescribeParameters(ctx context.Context, in *ssm.DescribeParametersInput, _ ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error) {
	if f.describeParameters == nil {
		return &ssm.DescribeParametersOutput{}, nil
	}
	return f.describeParameters(in)
}

func (f *fakeSSM) DeleteParameter(ctx context.Context, in *ssm.DeleteParameterInput, _ ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error) {
	f.deleteParameterCalls++
	if f.deleteParameter == nil {
		return &ssm.DeleteParameterOutput{}, nil
	}
	return f.deleteParameter(in)
}

type fakeLogs struct {
	describeLogGroups func(*cloudwatchlogs.DescribeLogGroupsInput) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	deleteLogGroup    func(*cloudwatchlogs.DeleteLogGroupInput) (*cloudwatchlogs.DeleteLogGroupOutput, error)

	deleteLogGroupCalls int
}

func (f *fakeLogs) DescribeLogGroups(ctx context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	if f.describeLogGroups == nil {
		return &cloudwatchlogs.DescribeLogGroupsOutput{}, nil
	}
	return f.describeLogGroups(in)
}

func (f *fakeLogs) DeleteLogGroup(ctx context.Context, in *cloudwatchlogs.DeleteLogGroupInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DeleteLogGroupOutput, error) {
	f.deleteLogGroupCalls++
	if f.deleteLogGroup == nil {
		return &cloudwatchlogs.DeleteLogGroupOutput{}, nil
	}
	return f.deleteLogGroup(in)
}

// interface conformance for the fakes
var (
	_ S3API             = (*fakeS3)(nil)
	_ ECRAPI            = (*fakeECR)(nil)
	_ LambdaAPI         = (*fakeLambda)(nil)
	_ DynamoDBAPI       = (*fakeDynamoDB)(nil)
	_ CloudFormationAPI = (*fakeCloudFormation)(nil)
	_ SSMAPI            = (*fakeSSM)(nil)
	_ LogsAPI           = (*fakeLogs)(nil)
)
