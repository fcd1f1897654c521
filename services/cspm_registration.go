package services

import (
	"context"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// CSPMRegistration manages cloud account registration and posture settings.
type CSPMRegistration struct {
	service
}

// NewCSPMRegistration returns a CSPMRegistration client.
func NewCSPMRegistration(b *falconbridge.Bridge) *CSPMRegistration {
	return &CSPMRegistration{service{bridge: b, endpoints: endpoint.CSPMRegistrationEndpoints}}
}

// AWSAccountQuery filters registered AWS accounts.
type AWSAccountQuery struct {
	ScanType        string   `schema:"scan-type,omitempty" validate:"omitempty,oneof=dry full"`
	IDs             []string `schema:"ids,omitempty"`
	IAMRoleARNs     []string `schema:"iam_role_arns,omitempty"`
	OrganizationIDs []string `schema:"organization-ids,omitempty"`
	Status          string   `schema:"status,omitempty" validate:"omitempty,oneof=provisioned operational"`
	Limit           int      `schema:"limit,omitempty" validate:"gte=0,lte=1000"`
	Offset          int      `schema:"offset,omitempty" validate:"gte=0"`
	Migrated        string   `schema:"migrated,omitempty" validate:"omitempty,oneof=true false"`
	GroupBy         string   `schema:"group_by,omitempty"`
}

// GetAWSAccount lists registered AWS accounts.
func (s *CSPMRegistration) GetAWSAccount(ctx context.Context, p *AWSAccountQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMAwsAccount", p, nil, opts)
}

// CreateAWSAccount registers AWS accounts and returns the onboarding script.
func (s *CSPMRegistration) CreateAWSAccount(ctx context.Context, accounts []AWSAccount, opts ...Option) *falconbridge.Response {
	return withResources(ctx, s.service, "CreateCSPMAwsAccount", accounts, opts)
}

// AWSAccountDelete selects AWS accounts or organizations to remove.
type AWSAccountDelete struct {
	IDs             []string `schema:"ids,omitempty"`
	OrganizationIDs []string `schema:"organization-ids,omitempty"`
}

// DeleteAWSAccount removes AWS accounts from registration.
func (s *CSPMRegistration) DeleteAWSAccount(ctx context.Context, p *AWSAccountDelete, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "DeleteCSPMAwsAccount", p, nil, opts)
}

// UpdateAWSAccount patches registered AWS accounts.
func (s *CSPMRegistration) UpdateAWSAccount(ctx context.Context, patches []AWSAccountPatch, opts ...Option) *falconbridge.Response {
	return withResources(ctx, s.service, "PatchCSPMAwsAccount", patches, opts)
}

// ConsoleSetupQuery parameterizes the AWS console setup links.
type ConsoleSetupQuery struct {
	IDs                   []string `schema:"ids,omitempty"`
	UseExistingCloudtrail string   `schema:"use_existing_cloudtrail,omitempty" validate:"omitempty,oneof=true false"`
	Region                string   `schema:"region,omitempty"`
}

// GetAWSConsoleSetupURLs returns the console URLs that grant access to an
// AWS environment.
func (s *CSPMRegistration) GetAWSConsoleSetupURLs(ctx context.Context, p *ConsoleSetupQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMAwsConsoleSetupURLs", p, nil, opts)
}

// IDsQuery selects resources by id.
type IDsQuery struct {
	IDs []string `schema:"ids,omitempty"`
}

// GetAWSAccountScriptsAttachment downloads the AWS registration scripts.
func (s *CSPMRegistration) GetAWSAccountScriptsAttachment(ctx context.Context, p *IDsQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMAwsAccountScriptsAttachment", p, nil, opts)
}

// AzureAccountQuery filters registered Azure subscriptions.
type AzureAccountQuery struct {
	IDs       []string `schema:"ids,omitempty"`
	TenantIDs []string `schema:"tenant_ids,omitempty"`
	ScanType  string   `schema:"scan-type,omitempty" validate:"omitempty,oneof=dry full"`
	Status    string   `schema:"status,omitempty" validate:"omitempty,oneof=provisioned operational"`
	Limit     int      `schema:"limit,omitempty" validate:"gte=0,lte=1000"`
	Offset    int      `schema:"offset,omitempty" validate:"gte=0"`
}

// GetAzureAccount lists registered Azure subscriptions.
func (s *CSPMRegistration) GetAzureAccount(ctx context.Context, p *AzureAccountQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMAzureAccount", p, nil, opts)
}

// CreateAzureAccount registers Azure subscriptions.
func (s *CSPMRegistration) CreateAzureAccount(ctx context.Context, accounts []AzureAccount, opts ...Option) *falconbridge.Response {
	return withResources(ctx, s.service, "CreateCSPMAzureAccount", accounts, opts)
}

// AzureAccountDelete selects Azure subscriptions or tenants to remove.
type AzureAccountDelete struct {
	IDs          []string `schema:"ids,omitempty"`
	TenantIDs    []string `schema:"tenant_ids,omitempty"`
	RetainTenant string   `schema:"retain_tenant,omitempty"`
}

// DeleteAzureAccount removes Azure subscriptions from registration.
func (s *CSPMRegistration) DeleteAzureAccount(ctx context.Context, p *AzureAccountDelete, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "DeleteCSPMAzureAccount", p, nil, opts)
}

// AzureClientIDUpdate names the service principal client id for a tenant.
type AzureClientIDUpdate struct {
	ID       string `schema:"id,omitempty"`
	TenantID string `schema:"tenant-id,omitempty"`
}

// UpdateAzureAccountClientID sets the client id of the service principal
// created from the public key CrowdStrike provided.
func (s *CSPMRegistration) UpdateAzureAccountClientID(ctx context.Context, p *AzureClientIDUpdate, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "UpdateCSPMAzureAccountClientID", p, nil, opts)
}

// AzureDefaultSubscriptionUpdate picks a default subscription for a tenant.
type AzureDefaultSubscriptionUpdate struct {
	TenantID       string `schema:"tenant-id,omitempty"`
	SubscriptionID string `schema:"subscription_id" validate:"required"`
}

// UpdateAzureTenantDefaultSubscriptionID sets the default subscription of a tenant.
func (s *CSPMRegistration) UpdateAzureTenantDefaultSubscriptionID(ctx context.Context, p *AzureDefaultSubscriptionUpdate, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "UpdateCSPMAzureTenantDefaultSubscriptionID", p, nil, opts)
}

// AzureCertificateQuery selects the tenant certificates to return.
type AzureCertificateQuery struct {
	TenantID   []string `schema:"tenant_id" validate:"required,min=1"`
	Refresh    bool     `schema:"refresh,omitempty"`
	YearsValid string   `schema:"years_valid,omitempty"`
}

// AzureDownloadCertificate returns the public certificate for Azure tenants.
func (s *CSPMRegistration) AzureDownloadCertificate(ctx context.Context, p *AzureCertificateQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "AzureDownloadCertificate", p, nil, opts)
}

// AzureScriptsQuery parameterizes the Azure registration script.
type AzureScriptsQuery struct {
	TenantID        string   `schema:"tenant-id,omitempty"`
	SubscriptionIDs []string `schema:"subscription_ids,omitempty"`
	AccountType     string   `schema:"account_type,omitempty" validate:"omitempty,oneof=commercial gov"`
	Template        string   `schema:"template,omitempty"`
}

// GetAzureUserScriptsAttachment downloads the Azure registration script.
func (s *CSPMRegistration) GetAzureUserScriptsAttachment(ctx context.Context, p *AzureScriptsQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMAzureUserScriptsAttachment", p, nil, opts)
}

// CloudAccountFilter narrows detection and IOA queries to one cloud account.
type CloudAccountFilter struct {
	CloudProvider       string `schema:"cloud_provider,omitempty" validate:"omitempty,oneof=aws azure gcp"`
	AccountID           string `schema:"account_id,omitempty"`
	AWSAccountID        string `schema:"aws_account_id,omitempty"`
	AzureSubscriptionID string `schema:"azure_subscription_id,omitempty"`
	AzureTenantID       string `schema:"azure_tenant_id,omitempty"`
}

// BehaviorDetectionQuery filters IOA behavior detections.
type BehaviorDetectionQuery struct {
	CloudAccountFilter
	Service       string   `schema:"service,omitempty"`
	State         string   `schema:"state,omitempty" validate:"omitempty,oneof=open closed"`
	DateTimeSince string   `schema:"date_time_since,omitempty"`
	Since         string   `schema:"since,omitempty"`
	Severity      string   `schema:"severity,omitempty"`
	NextToken     string   `schema:"next_token,omitempty"`
	Limit         int      `schema:"limit,omitempty" validate:"gte=0,lte=500"`
	ResourceID    []string `schema:"resource_id,omitempty"`
	ResourceUUID  []string `schema:"resource_uuid,omitempty"`
}

// GetBehaviorDetections lists IOA behavior detections.
func (s *CSPMRegistration) GetBehaviorDetections(ctx context.Context, p *BehaviorDetectionQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetBehaviorDetections", p, nil, opts)
}

// ConfigurationDetectionQuery filters IOM configuration detections.
type ConfigurationDetectionQuery struct {
	CloudAccountFilter
	Status    string `schema:"status,omitempty" validate:"omitempty,oneof=all new reoccurring"`
	Region    string `schema:"region,omitempty"`
	Severity  string `schema:"severity,omitempty"`
	Service   string `schema:"service,omitempty"`
	NextToken string `schema:"next_token,omitempty"`
	Limit     int    `schema:"limit,omitempty" validate:"gte=0,lte=500"`
}

// GetConfigurationDetections lists IOM configuration detections.
func (s *CSPMRegistration) GetConfigurationDetections(ctx context.Context, p *ConfigurationDetectionQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetConfigurationDetections", p, nil, opts)
}

// GetConfigurationDetectionEntities returns configuration detections by id.
func (s *CSPMRegistration) GetConfigurationDetectionEntities(ctx context.Context, ids []string, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetConfigurationDetectionEntities", &IDsQuery{IDs: ids}, nil, opts)
}

// FQLQuery is the usual filter, sort and paging set.
type FQLQuery struct {
	Filter string `schema:"filter,omitempty"`
	Sort   string `schema:"sort,omitempty"`
	Limit  int    `schema:"limit,omitempty" validate:"gte=0"`
	Offset int    `schema:"offset,omitempty" validate:"gte=0"`
}

// GetConfigurationDetectionIDsV2 returns configuration detection ids matching an FQL filter.
func (s *CSPMRegistration) GetConfigurationDetectionIDsV2(ctx context.Context, p *FQLQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetConfigurationDetectionIDsV2", p, nil, opts)
}

// IOAEventsQuery filters the events behind one IOA policy.
type IOAEventsQuery struct {
	CloudAccountFilter
	PolicyID string   `schema:"policy_id" validate:"required"`
	UserIDs  []string `schema:"user_ids,omitempty"`
	State    string   `schema:"state,omitempty"`
	Offset   int      `schema:"offset,omitempty" validate:"gte=0"`
	Limit    int      `schema:"limit,omitempty" validate:"gte=0,lte=500"`
}

// GetIOAEvents lists events for an IOA policy.
func (s *CSPMRegistration) GetIOAEvents(ctx context.Context, p *IOAEventsQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetIOAEvents", p, nil, opts)
}

// IOAUsersQuery filters the users seen by one IOA policy.
type IOAUsersQuery struct {
	CloudAccountFilter
	PolicyID string `schema:"policy_id" validate:"required"`
	State    string `schema:"state,omitempty"`
}

// GetIOAUsers lists users involved in IOA events for a policy.
func (s *CSPMRegistration) GetIOAUsers(ctx context.Context, p *IOAUsersQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetIOAUsers", p, nil, opts)
}

// GetPolicy returns detailed information for one policy id.
func (s *CSPMRegistration) GetPolicy(ctx context.Context, id string, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMPolicy", nil, nil, append([]Option{WithKeyword("ids", id)}, opts...))
}

// GetPolicyDetails returns policies by id.
func (s *CSPMRegistration) GetPolicyDetails(ctx context.Context, ids []string, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMPoliciesDetails", &IDsQuery{IDs: ids}, nil, opts)
}

// PolicySettingsQuery filters policy settings.
type PolicySettingsQuery struct {
	Service       string `schema:"service,omitempty"`
	PolicyID      string `schema:"policy-id,omitempty"`
	CloudPlatform string `schema:"cloud-platform,omitempty" validate:"omitempty,oneof=aws azure gcp"`
}

// GetPolicySettings lists policy settings.
func (s *CSPMRegistration) GetPolicySettings(ctx context.Context, p *PolicySettingsQuery, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "GetCSPMPolicySettings", p, nil, opts)
}

// UpdatePolicySettings overrides severity or disables policies.
func (s *CSPMRegistration) UpdatePolicySettings(ctx context.Context, settings []PolicySetting, opts ...Option) *falconbridge.Response {
	return withResources(ctx, s.service, "UpdateCSPMPolicySettings", settings, opts)
}

// GetScanSchedule returns the scan schedule of the given cloud platforms.
func (s *CSPMRegistration) GetScanSchedule(ctx context.Context, platforms []string, opts ...Option) *falconbridge.Response {
	var kw []Option
	if len(platforms) > 0 {
		kw = append(kw, WithKeyword("cloud-platform", platforms))
	}
	return s.call(ctx, "GetCSPMScanSchedule", nil, nil, append(kw, opts...))
}

// UpdateScanSchedule sets scan schedules.
func (s *CSPMRegistration) UpdateScanSchedule(ctx context.Context, schedules []ScanSchedule, opts ...Option) *falconbridge.Response {
	return withResources(ctx, s.service, "UpdateCSPMScanSchedule", schedules, opts)
}

func withResources[T any](ctx context.Context, s service, operationID string, items []T, opts []Option) *falconbridge.Response {
	body, err := resources(items...)
	if err != nil {
		return &falconbridge.Response{Envelope: falconbridge.ErrorResult(err.Error(), 500, nil)}
	}
	return s.call(ctx, operationID, nil, body, opts)
}
