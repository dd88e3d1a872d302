// Package cloudwatch contains AWS::CloudWatch::Alarm.
package cloudwatch

// Alarm is AWS::CloudWatch::Alarm.
type Alarm struct {
	AlarmDescription   string      `json:"AlarmDescription,omitempty"`
	Namespace          string      `json:"Namespace,omitempty"`
	MetricName         string      `json:"MetricName,omitempty"`
	Dimensions         []Dimension `json:"Dimensions,omitempty"`
	Statistic          string      `json:"Statistic,omitempty"`
	Period             int         `json:"Period,omitempty"`
	EvaluationPeriods  int         `json:"EvaluationPeriods,omitempty"`
	Threshold          float64     `json:"Threshold,omitempty"`
	ComparisonOperator string      `json:"ComparisonOperator,omitempty"`
	AlarmActions       []any       `json:"AlarmActions,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (Alarm) ResourceType() string { return "AWS::CloudWatch::Alarm" }

// Dimension narrows the alarm metric, e.g. to one auto scaling group.
type Dimension struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
}

// Comparison operators used by the scaling alarms.
const (
	GreaterThanThreshold = "GreaterThanThreshold"
	LessThanThreshold    = "LessThanThreshold"
)
