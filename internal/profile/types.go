package profile

// Preferences mirrors the backend preference object. It is always sent
// and stored wholesale; there are no partial-field update semantics.
type Preferences struct {
	TargetLanguage     string   `json:"targetLanguage"`
	NativeLanguage     string   `json:"nativeLanguage"`
	ProficiencyLevel   string   `json:"proficiencyLevel"`
	LearningStyle      []string `json:"learningStyle"`
	DailyGoalMinutes   int      `json:"dailyGoalMinutes"`
	AvailableDays      []string `json:"availableDays"`
	PreferredTimeOfDay []string `json:"preferredTimeOfDay"`
	LearningGoals      []string `json:"learningGoals"`
	Motivation         string   `json:"motivation"`
	FocusAreas         []string `json:"focusAreas"`
	TopicsOfInterest   []string `json:"topicsOfInterest"`
	PreferredVoiceSpeed string  `json:"preferredVoiceSpeed"`
	CorrectionStyle    string   `json:"correctionStyle"`
}

// Profile is the locally cached user record: identity plus the last
// successfully submitted preferences.
type Profile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Preferences Preferences `json:"preferences"`
}

const (
	// Daily goal bounds in minutes.
	MinDailyGoal = 5
	MaxDailyGoal = 120
)

// DefaultPreferences returns the preference defaults used to seed the
// onboarding wizard.
func DefaultPreferences() Preferences {
	return Preferences{
		NativeLanguage:      "English",
		ProficiencyLevel:    "beginner",
		DailyGoalMinutes:    15,
		PreferredVoiceSpeed: "normal",
		CorrectionStyle:     "gentle",
	}
}

// Option is a selectable catalog entry.
type Option struct {
	Value string
	Label string
	Desc  string
}

// Languages available as target or native language.
var Languages = []string{
	"Spanish", "French", "German", "Italian", "Portuguese", "Dutch",
	"Japanese", "Korean", "Mandarin Chinese", "Cantonese", "Arabic",
	"Russian", "Hindi", "Bengali", "Turkish", "Polish", "English",
}

// ProficiencyLevels is the fixed ordered set of levels, lowest first.
var ProficiencyLevels = []Option{
	{Value: "absolute_beginner", Label: "Absolute Beginner", Desc: "Starting from scratch"},
	{Value: "beginner", Label: "Beginner", Desc: "Know a few basic phrases"},
	{Value: "elementary", Label: "Elementary", Desc: "Can have simple conversations"},
	{Value: "intermediate", Label: "Intermediate", Desc: "Comfortable with everyday topics"},
	{Value: "upper_intermediate", Label: "Upper Intermediate", Desc: "Can discuss complex topics"},
	{Value: "advanced", Label: "Advanced", Desc: "Near-native fluency"},
	{Value: "proficient", Label: "Proficient", Desc: "Native or bilingual proficiency"},
}

var LearningStyles = []Option{
	{Value: "visual", Label: "Visual", Desc: "Images, diagrams, charts"},
	{Value: "auditory", Label: "Auditory", Desc: "Listening and speaking"},
	{Value: "kinesthetic", Label: "Hands-on", Desc: "Practice and doing"},
	{Value: "reading_writing", Label: "Reading/Writing", Desc: "Text-based learning"},
	{Value: "conversational", Label: "Conversational", Desc: "Through dialogue"},
	{Value: "structured", Label: "Structured", Desc: "Organized lessons"},
	{Value: "immersive", Label: "Immersive", Desc: "Full immersion"},
}

var LearningGoals = []Option{
	{Value: "travel", Label: "Travel"},
	{Value: "work", Label: "Work/Career"},
	{Value: "education", Label: "Education"},
	{Value: "cultural", Label: "Cultural Interest"},
	{Value: "family", Label: "Family"},
	{Value: "social", Label: "Making Friends"},
	{Value: "relocation", Label: "Relocation"},
	{Value: "hobby", Label: "Personal Hobby"},
	{Value: "test_preparation", Label: "Test Prep"},
}

var FocusAreas = []Option{
	{Value: "speaking", Label: "Speaking"},
	{Value: "listening", Label: "Listening"},
	{Value: "reading", Label: "Reading"},
	{Value: "writing", Label: "Writing"},
	{Value: "grammar", Label: "Grammar"},
	{Value: "vocabulary", Label: "Vocabulary"},
	{Value: "pronunciation", Label: "Pronunciation"},
}

var WeekDays = []Option{
	{Value: "monday", Label: "Mon"},
	{Value: "tuesday", Label: "Tue"},
	{Value: "wednesday", Label: "Wed"},
	{Value: "thursday", Label: "Thu"},
	{Value: "friday", Label: "Fri"},
	{Value: "saturday", Label: "Sat"},
	{Value: "sunday", Label: "Sun"},
}

var TimesOfDay = []Option{
	{Value: "early_morning", Label: "Early Morning", Desc: "5-9 AM"},
	{Value: "morning", Label: "Morning", Desc: "9 AM-12 PM"},
	{Value: "afternoon", Label: "Afternoon", Desc: "12-5 PM"},
	{Value: "evening", Label: "Evening", Desc: "5-9 PM"},
	{Value: "night", Label: "Night", Desc: "9 PM-12 AM"},
}

var VoiceSpeeds = []Option{
	{Value: "slow", Label: "Slow", Desc: "Take your time"},
	{Value: "normal", Label: "Normal", Desc: "Natural pace"},
	{Value: "fast", Label: "Fast", Desc: "Challenge me"},
}

var CorrectionStyles = []Option{
	{Value: "gentle", Label: "Gentle", Desc: "Corrections woven into replies"},
	{Value: "direct", Label: "Direct", Desc: "Point out every mistake"},
	{Value: "end_of_conversation", Label: "At the End", Desc: "Summary after the conversation"},
}
