package backend

// Product identifies a vendor product owning one or more features.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Feature is a single licensable capability of a vendor product.
// Counters are maintained by the backend; the agent only reads them.
type Feature struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Product  Product `json:"product"`
	ConfigID int     `json:"config_id"`
	// Reserved is the quota held back from the scheduler entirely.
	Reserved int `json:"reserved"`
	Total    int `json:"total"`
	Used     int `json:"used"`
	// BookedTotal aggregates booking quantities across all clusters.
	BookedTotal int `json:"booked_total"`
}

// ProductFeature returns the dotted product.feature identifier.
func (f Feature) ProductFeature() string {
	return f.Product.Name + "." + f.Name
}

// LicenseServer is one host:port endpoint of a vendor license server.
type LicenseServer struct {
	ID       int    `json:"id"`
	ConfigID int    `json:"config_id"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// Configuration groups the features served by one vendor license server
// deployment, along with the cluster-side policy applied to them.
type Configuration struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	ClusterClientID string          `json:"cluster_client_id"`
	Features        []Feature       `json:"features"`
	LicenseServers  []LicenseServer `json:"license_servers"`
	// GraceTime is the number of seconds a job may run before its
	// bookings are forcibly released.
	GraceTime int `json:"grace_time"`
	// Type selects the vendor parser (flexlm, rlm, lmx, lsdyna,
	// olicense, dsls).
	Type string `json:"type"`
}

// Booking reserves a quantity of one feature on behalf of a job.
type Booking struct {
	ID        int `json:"id"`
	JobID     int `json:"job_id"`
	FeatureID int `json:"feature_id"`
	Quantity  int `json:"quantity"`
}

// Job is the ledger record of a scheduler job holding bookings.
type Job struct {
	ID              int       `json:"id"`
	SlurmJobID      string    `json:"slurm_job_id"`
	ClusterClientID string    `json:"cluster_client_id"`
	Username        string    `json:"username"`
	LeadHost        string    `json:"lead_host"`
	Bookings        []Booking `json:"bookings"`
}

// FeatureUpdate carries fresh vendor counters for one feature.
type FeatureUpdate struct {
	ProductName string `json:"product_name"`
	FeatureName string `json:"feature_name"`
	Total       int    `json:"total"`
	Used        int    `json:"used"`
}

// BookingCreate is one requested booking inside a JobCreate.
type BookingCreate struct {
	ProductFeature string `json:"product_feature"`
	Quantity       int    `json:"quantity"`
}

// JobCreate is the payload for registering a new scheduler job.
type JobCreate struct {
	SlurmJobID string          `json:"slurm_job_id"`
	Username   string          `json:"username"`
	LeadHost   string          `json:"lead_host"`
	Bookings   []BookingCreate `json:"bookings"`
}
