package command

// PluginImage is the velero AWS plugin image installed alongside velero. It is
// pinned together with the required velero release.
const PluginImage = "velero/velero-plugin-for-aws:v1.1.0"

// DefaultExcludeNamespaces are left out of ad-hoc backups unless overridden.
var DefaultExcludeNamespaces = []string{"default", "kube-system", "kube-public", "kube-node-lease", "velero"}

// DefaultIncludeNamespaces are covered by scheduled backups unless overridden.
var DefaultIncludeNamespaces = []string{"default"}

// Params holds the validated inputs for one operation. The concrete types
// below are the only implementations.
type Params interface {
	Operation() Operation
}

// InstallParams configures `velero install` and the bucket it points at.
type InstallParams struct {
	Bucket         string
	BackupRegion   string
	SnapshotRegion string
	// SecretFile is a credentials file path relative to the working directory.
	SecretFile   string
	CreateBucket bool
}

// BackupParams configures a one-off `velero backup create`.
type BackupParams struct {
	BackupName        string
	ExcludeNamespaces []string
}

// ScheduleParams configures `velero create schedule`. CronHours and TTLHours
// are both expressed in hours.
type ScheduleParams struct {
	ScheduleName      string
	IncludeNamespaces []string
	CronHours         int
	TTLHours          int
}

// RestoreParams configures `velero restore create`.
type RestoreParams struct {
	BackupName string
}

// DescribeParams configures `velero <state> describe`.
type DescribeParams struct {
	BackupName string
	State      DescribeState
}

// RequiredVersionParams carries nothing; the operation only reports versions.
type RequiredVersionParams struct{}

func (InstallParams) Operation() Operation         { return OpInstall }
func (BackupParams) Operation() Operation          { return OpBackup }
func (ScheduleParams) Operation() Operation        { return OpSchedule }
func (RestoreParams) Operation() Operation         { return OpRestore }
func (DescribeParams) Operation() Operation        { return OpDescribe }
func (RequiredVersionParams) Operation() Operation { return OpRequiredVersion }
