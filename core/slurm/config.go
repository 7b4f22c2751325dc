package slurm

// Config holds configuration for the scheduler command bridge.
type Config struct {
	// ScontrolPath is the scontrol binary invoked for license pools,
	// per-job queries and reservation management.
	ScontrolPath string `mapstructure:"scontrol_path" default:"/usr/bin/scontrol"`
	// SqueuePath is the squeue binary invoked for queue listings.
	SqueuePath string `mapstructure:"squeue_path" default:"/usr/bin/squeue"`
	// TimeoutSeconds bounds every external scheduler command.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
	// ReservationName is the well-known name of the single capacity
	// reservation the agent manages.
	ReservationName string `mapstructure:"reservation_name" default:"license-manager-reservation"`
}
