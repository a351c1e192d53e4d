package services

// Services defined in this package:
// - AuthService: Handles registration, login, token refresh and profiles
// - SchoolService: Handles schools and their period tables
// - ScheduleService: Handles weekly schedules and common-free-time queries
// - FriendshipService: Handles friend requests and friendships
// - OCRService: Handles timetable photo recognition and parsing
