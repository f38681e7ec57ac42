package orgs

// Organization is an AWS-managed container grouping accounts under
// centralized billing and policy.
type Organization struct {
	ID         string
	ARN        string
	FeatureSet string
}

// OU is an organizational unit node inside an Organization.
type OU struct {
	ID   string
	Name string
	ARN  string
}

// Account creation states reported by DescribeCreateAccountStatus.
const (
	CreateStateInProgress = "IN_PROGRESS"
	CreateStateSucceeded  = "SUCCEEDED"
	CreateStateFailed     = "FAILED"
)

// CreateStatus describes an asynchronous account-creation request.
type CreateStatus struct {
	RequestID     string
	AccountName   string
	AccountID     string
	State         string
	FailureReason string
}
