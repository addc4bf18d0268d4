package email

const subjectReferralReceived = "Thank you for your referral"
