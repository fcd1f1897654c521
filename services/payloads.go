package services

import (
	"encoding/json"
	"fmt"
)

// AWSAccount is one AWS account registration.
type AWSAccount struct {
	AccountID                 string `json:"account_id" validate:"required"`
	AccountType               string `json:"account_type,omitempty"`
	BehaviorAssessmentEnabled *bool  `json:"behavior_assessment_enabled,omitempty"`
	CloudtrailRegion          string `json:"cloudtrail_region,omitempty"`
	IAMRoleARN                string `json:"iam_role_arn,omitempty"`
	IsMaster                  *bool  `json:"is_master,omitempty"`
	OrganizationID            string `json:"organization_id,omitempty"`
	SensorManagementEnabled   *bool  `json:"sensor_management_enabled,omitempty"`
	UseExistingCloudtrail     *bool  `json:"use_existing_cloudtrail,omitempty"`
}

// AWSAccountPatch updates an AWS account registration.
type AWSAccountPatch struct {
	AccountID                 string `json:"account_id" validate:"required"`
	BehaviorAssessmentEnabled *bool  `json:"behavior_assessment_enabled,omitempty"`
	CloudtrailRegion          string `json:"cloudtrail_region,omitempty"`
	IAMRoleARN                string `json:"iam_role_arn,omitempty"`
	RemediationRegion         string `json:"remediation_region,omitempty"`
	RemediationTOUAccepted    string `json:"remediation_tou_accepted,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	SensorManagementEnabled   *bool  `json:"sensor_management_enabled,omitempty"`
}

// AzureAccount is one Azure subscription registration.
type AzureAccount struct {
	AccountType         string `json:"account_type,omitempty" validate:"omitempty,oneof=commercial gov"`
	ClientID            string `json:"client_id,omitempty"`
	DefaultSubscription *bool  `json:"default_subscription,omitempty"`
	SubscriptionID      string `json:"subscription_id" validate:"required"`
	TenantID            string `json:"tenant_id" validate:"required"`
	YearsValid          int    `json:"years_valid,omitempty" validate:"gte=0"`
}

// PolicySetting overrides one CSPM policy.
type PolicySetting struct {
	AccountID   string   `json:"account_id,omitempty"`
	AccountIDs  []string `json:"account_ids,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
	PolicyID    int      `json:"policy_id" validate:"required"`
	Regions     []string `json:"regions,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	TagExcluded *bool    `json:"tag_excluded,omitempty"`
}

// ScanSchedule sets how often one cloud platform is scanned.
type ScanSchedule struct {
	CloudPlatform     string `json:"cloud_platform" validate:"required,oneof=aws azure gcp"`
	NextScanTimestamp string `json:"next_scan_timestamp,omitempty"`
	ScanInterval      string `json:"scan_interval,omitempty"`
	ScanSchedule      string `json:"scan_schedule,omitempty"`
}

// Bool returns a pointer to b, for the optional flags above.
func Bool(b bool) *bool {
	return &b
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return m, nil
}
