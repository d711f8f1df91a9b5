package domain

import "time"

// Client types and hosting environments recorded against a deployment.
const (
	ClientTypePersonal = "PERSONAL"
	ClientTypeService  = "SERVICE"

	HostingCloudPlatform = "CLOUDPLATFORM"
	HostingOther         = "OTHER"
)

// Deployment is operational metadata for a base identity: who owns the
// client and where its credential is mounted. One row per base identity,
// shared by every version.
type Deployment struct {
	BaseClientID string
	ClientType   string // PERSONAL or SERVICE
	Team         string
	TeamContact  string
	TeamSlack    string
	Hosting      string // CLOUDPLATFORM or OTHER
	Namespace    string
	SecretName   string // secret-manager entry holding the credential
	ClientIDKey  string // key within the secret for the client id
	SecretKey    string // key within the secret for the client secret
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
