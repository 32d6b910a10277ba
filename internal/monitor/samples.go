package monitor

// Sample corpus driving the simulated feed. Numbers span the interesting
// classifier branches: a known-scam prefix, a clean Indian mobile, US and UK
// internationals, and a trusted toll-free line.
var sampleCallers = []string{
	"+2349012345678",
	"+919876543210",
	"+11234567890",
	"18001234567",
	"+447123456789",
}

var sampleMessages = []string{
	"Congratulations! You've won ₹10,00,000. Click here: bit.ly/claim123",
	"Your Amazon order #1234 has been shipped and will arrive tomorrow.",
	"URGENT: Your bank account suspended. Verify OTP 123456 within 24 hours.",
	"Hi! Meeting at 5 PM today. See you there!",
	"Your tax refund of ₹50,000 is ready. Claim now at gov-refund.xyz",
	"Reminder: Your appointment is scheduled for tomorrow at 10 AM.",
}
