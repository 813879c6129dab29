package swms

// AuthResponse is returned by /auth/login and /auth/register.
type AuthResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID int64  `json:"userId"`
}

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /auth/register payload. An empty role lets the
// backend default to EMPLOYEE.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
}

// ResetToken is returned by /auth/forgot-password. The backend hands the
// token back directly while no mailer is configured.
type ResetToken struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ResetPasswordRequest is the /auth/reset-password payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// User is the safe outbound representation of an account.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// TaskStatus is the lifecycle stage of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// TaskStatuses lists statuses in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskCompleted, TaskCancelled}

// Task is a unit of work assigned to an employee. Dates are ISO strings as
// the backend formats them.
type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	AssignedToID   int64      `json:"assignedToId"`
	AssignedToName string     `json:"assignedToName"`
	CreatedByID    int64      `json:"createdById"`
	CreatedByName  string     `json:"createdByName"`
	Deadline       string     `json:"deadline,omitempty"`
	CreatedAt      string     `json:"createdAt,omitempty"`
	UpdatedAt      string     `json:"updatedAt,omitempty"`
}

// TaskRequest creates or updates a task.
type TaskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       TaskStatus `json:"status,omitempty"`
	AssignedToID int64      `json:"assignedToId"`
	Deadline     string     `json:"deadline,omitempty"`
}

// AttendanceStatus is the daily attendance state.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
)

// AttendanceStatuses lists the recognised statuses.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay}

// Attendance is one employee's record for a day.
type Attendance struct {
	ID       int64            `json:"id"`
	UserID   int64            `json:"userId"`
	UserName string           `json:"userName"`
	Date     string           `json:"date"`
	CheckIn  string           `json:"checkIn,omitempty"`
	CheckOut string           `json:"checkOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
	Notes    string           `json:"notes,omitempty"`
}

// AttendanceRequest creates or updates an attendance record. Status is
// computed by the backend when omitted.
type AttendanceRequest struct {
	UserID   int64            `json:"userId"`
	Date     string           `json:"date"`
	CheckIn  string           `json:"checkIn,omitempty"`
	CheckOut string           `json:"checkOut,omitempty"`
	Status   AttendanceStatus `json:"status,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}
