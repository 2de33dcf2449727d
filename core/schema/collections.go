package schema

const (
	UsersCollection       = "users"
	CoursesCollection     = "courses"
	LessonsCollection     = "lessons"
	AssignmentsCollection = "assignments"
	EnrollmentsCollection = "enrollments"
	SubmissionsCollection = "submissions"
)

// EmailPattern is the basic local-part@domain rule enforced on users.email.
const EmailPattern = `^.+@.+\..+$`

var (
	str    = Property{Types: types(TypeString)}
	date   = Property{Types: types(TypeDate)}
	flag   = Property{Types: types(TypeBool)}
	strArr = Property{Types: types(TypeArray), Items: &Property{Types: types(TypeString)}}
)

func described(p Property, desc string) Property {
	p.Description = desc
	return p
}

var Users = Schema{
	Collection: UsersCollection,
	Required:   []string{"userId", "email", "firstName", "lastName", "role", "updatedAt"},
	Properties: map[string]Property{
		"userId":     described(str, "Unique user identifier"),
		"email":      {Types: types(TypeString), Pattern: EmailPattern, Description: "Valid email address"},
		"firstName":  described(str, "First name is required"),
		"lastName":   described(str, "Last name is required"),
		"role":       {Enum: []string{"student", "instructor"}, Description: "Role must be student or instructor"},
		"dateJoined": described(date, "User join date"),
		"updatedAt":  {Types: types(TypeDate, TypeNull), Description: "Last user information update date"},
		"profile": {
			Types: types(TypeObject),
			Properties: map[string]Property{
				"bio":    str,
				"avatar": str,
				"skills": strArr,
			},
		},
		"isActive": described(flag, "Boolean for account status"),
	},
	Indexes: []Index{
		{Name: "userId_1", Keys: []string{"userId"}, Unique: true},
		{Name: "email_1", Keys: []string{"email"}, Unique: true},
	},
}

var Courses = Schema{
	Collection: CoursesCollection,
	Required: []string{
		"courseId", "title", "description", "instructorId", "category", "level",
		"duration", "price", "tags", "createdAt", "updatedAt", "isPublished",
	},
	Properties: map[string]Property{
		"courseId":     described(str, "Unique identifier for the course"),
		"title":        described(str, "Course title"),
		"description":  described(str, "Detailed course description"),
		"instructorId": described(str, "Reference to instructor in users collection"),
		"category":     described(str, "Subject category"),
		"level":        {Enum: []string{"beginner", "intermediate", "advanced"}, Description: "Course difficulty level"},
		"duration":     {Types: types(TypeDouble), Minimum: bound(0), Description: "Duration of course in hours"},
		"price":        {Types: types(TypeDouble), Minimum: bound(0), Description: "Price in USD"},
		"tags":         described(strArr, "Relevant keywords for filtering"),
		"ratings": {
			Types: types(TypeArray),
			Items: &Property{
				Types:    types(TypeObject),
				Required: []string{"studentId", "rating", "ratedAt"},
				Properties: map[string]Property{
					"studentId": described(str, "Student who gave the rating"),
					"rating": {
						Types:       types(TypeDouble),
						Minimum:     bound(1),
						Maximum:     bound(5),
						Description: "Rating score (1.0 - 5.0)",
					},
					"ratedAt": described(date, "Timestamp of the rating"),
				},
			},
			Description: "User-generated course reviews",
		},
		"createdAt":   described(date, "Course creation timestamp"),
		"updatedAt":   described(date, "Last update timestamp"),
		"isPublished": described(flag, "Publish status"),
	},
	Indexes: []Index{
		{Name: "courseId_1", Keys: []string{"courseId"}, Unique: true},
		{Name: "title_1_category_1", Keys: []string{"title", "category"}},
	},
}

var Lessons = Schema{
	Collection: LessonsCollection,
	Required:   []string{"lessonId", "courseId", "title", "position", "createdAt"},
	Properties: map[string]Property{
		"lessonId":  str,
		"courseId":  described(str, "Reference to courses.courseId"),
		"title":     str,
		"content":   str,
		"duration":  {Types: types(TypeInt), Minimum: bound(1), Description: "Duration in minutes"},
		"position":  {Types: types(TypeInt), Minimum: bound(1)},
		"createdAt": date,
		"updatedAt": date,
	},
	Indexes: []Index{
		{Name: "lessonId_1", Keys: []string{"lessonId"}, Unique: true},
		{Name: "courseId_1_position_1", Keys: []string{"courseId", "position"}, Unique: true},
	},
}

var Assignments = Schema{
	Collection: AssignmentsCollection,
	Required:   []string{"assignmentId", "courseId", "title", "description", "createdAt", "dueDate"},
	Properties: map[string]Property{
		"assignmentId": str,
		"courseId":     described(str, "Reference to courses.courseId"),
		"title":        str,
		"description":  str,
		"createdAt":    date,
		"dueDate":      date,
		"maxScore":     {Types: types(TypeInt), Minimum: bound(1)},
		"isPublished":  flag,
	},
	Indexes: []Index{
		{Name: "assignmentId_1", Keys: []string{"assignmentId"}, Unique: true},
		{Name: "dueDate_1", Keys: []string{"dueDate"}},
	},
}

var Enrollments = Schema{
	Collection: EnrollmentsCollection,
	Required:   []string{"enrollmentId", "studentId", "courseId", "enrolledAt", "progress", "status"},
	Properties: map[string]Property{
		"enrollmentId": str,
		"studentId":    described(str, "Reference to users.userId"),
		"courseId":     described(str, "Reference to courses.courseId"),
		"enrolledAt":   date,
		"progress":     {Types: types(TypeDouble), Minimum: bound(0), Maximum: bound(100)},
		"status":       {Enum: []string{"enrolled", "in_progress", "completed"}},
	},
	Indexes: []Index{
		{Name: "enrollmentId_1", Keys: []string{"enrollmentId"}, Unique: true},
		{Name: "studentId_1_courseId_1", Keys: []string{"studentId", "courseId"}, Unique: true},
	},
}

var Submissions = Schema{
	Collection: SubmissionsCollection,
	Required:   []string{"submissionId", "assignmentId", "studentId", "submittedAt"},
	Properties: map[string]Property{
		"submissionId": str,
		"assignmentId": described(str, "Reference to assignments.assignmentId"),
		"studentId":    described(str, "Reference to users.userId"),
		"submittedAt":  date,
		"gradedAt":     {Types: types(TypeDate, TypeNull)},
		"score":        {Types: types(TypeInt), Minimum: bound(0)},
		"feedback":     str,
		"isGraded":     flag,
	},
	Indexes: []Index{
		{Name: "submissionId_1", Keys: []string{"submissionId"}, Unique: true},
		{Name: "studentId_1", Keys: []string{"studentId"}},
	},
}

// All lists every collection contract in dependency order.
func All() []Schema {
	return []Schema{Users, Courses, Lessons, Assignments, Enrollments, Submissions}
}

// Lookup finds the contract of a collection by name.
func Lookup(collection string) (Schema, bool) {
	for _, s := range All() {
		if s.Collection == collection {
			return s, true
		}
	}
	return Schema{}, false
}
