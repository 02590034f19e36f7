package models

// Counter is a counting zone: a logical aggregation bucket owning one or more
// regions of interest on a single camera. Read-mostly reference data.
type Counter struct {
	ID          int64  `json:"id" db:"id"`
	CounterID   int    `json:"counter_id" db:"counter_id"`
	Name        string `json:"counter_name" db:"counter_name"`
	CamID       int    `json:"counter_cam_id" db:"counter_cam_id"`
	NumOfROIs   int    `json:"num_of_rois" db:"num_of_rois"`
	Description string `json:"counter_desc,omitempty" db:"counter_desc"`
}

// Camera is a physical camera feeding the perception pipeline.
type Camera struct {
	ID          int64  `json:"id" db:"id"`
	CamID       int    `json:"cam_id" db:"cam_id"`
	Name        string `json:"cam_name" db:"cam_name"`
	IP          string `json:"cam_ip,omitempty" db:"cam_ip"`
	MAC         string `json:"cam_mac,omitempty" db:"cam_mac"`
	Enabled     bool   `json:"cam_enable" db:"cam_enable"`
	RTSP        string `json:"cam_rtsp,omitempty" db:"cam_rtsp"`
	Description string `json:"cam_desc,omitempty" db:"cam_desc"`
}

// ROI is a region of interest: the spatial detection boundary inside a
// camera's view. Coordinates is the raw "[x0,y0,x1,y1]" text the pipeline
// writes; Area is derived from it when the text parses.
type ROI struct {
	ID          int64   `json:"id" db:"id"`
	ROIID       int     `json:"roi_id" db:"roi_id"`
	CounterID   int     `json:"counter_roi_id" db:"counter_roi_id"`
	Coordinates string  `json:"roi_coor" db:"roi_coor"`
	Description string  `json:"roi_desc,omitempty" db:"roi_desc"`
	Area        float64 `json:"area,omitempty"`
}

// GroupEvent is an optional campaign or exhibition label used to partition
// visit records for reporting.
type GroupEvent struct {
	ID          int64  `json:"id" db:"id"`
	EventID     int    `json:"event_id" db:"event_id"`
	Name        string `json:"event_name" db:"event_name"`
	Description string `json:"event_desc,omitempty" db:"event_desc"`
}

// Account is an operator login. Passwords are stored hashed; the plaintext
// column of the legacy schema is not carried over.
type Account struct {
	ID           int64  `json:"id" db:"id"`
	UserID       int    `json:"user_id" db:"user_id"`
	UserName     string `json:"user_name" db:"user_name"`
	PasswordHash string `json:"-" db:"password_hash"`
	FirstName    string `json:"first_name,omitempty" db:"first_name"`
	LastName     string `json:"last_name,omitempty" db:"last_name"`
	Tel          string `json:"tel,omitempty" db:"tel"`
	Status       string `json:"user_status" db:"user_status"`
}
