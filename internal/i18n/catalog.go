package i18n

// Default is the catalog used by the service
var Default = Catalog{
	KeyOfflineVoice: {
		"en": "Voice processing requires an active internet connection. Please type your query in Offline Mode.",
		"hi": "वॉयस प्रोसेसिंग के लिए इंटरनेट की आवश्यकता है। कृपया अपना प्रश्न टाइप करें।",
	},
	KeyOfflineImage: {
		"en": "Image analysis requires an active internet connection. Please describe the issue in text.",
		"hi": "छवि विश्लेषण के लिए इंटरनेट की आवश्यकता है। कृपया समस्या का वर्णन करें।",
	},
	KeyOfflineFallback: {
		"en": "I am currently in Offline Mode using local database. I can answer basic questions about crops, contacts, and schemes. Please connect to internet for advanced features.",
		"hi": "मैं अभी ऑफलाइन मोड में हूं। मेरे पास सीमित जानकारी उपलब्ध है। कृपया अपनी फसल, बीमारी या योजना के बारे में पूछें।",
		"mr": "मी सध्या ऑफलाइन मोडमध्ये आहे. माझ्याकडे मर्यादित माहिती उपलब्ध आहे. कृपया पीक, रोग किंवा योजनेबद्दल विचारा.",
		"ta": "நான் இப்போது ஆஃப்லைனில் இருக்கிறேன். என்னிடம் குறைந்த அளவு தகவல்களே உள்ளன.",
		"te": "నేను ఇప్పుడు ఆఫ్‌లైన్ మోడ్‌లో ఉన్నాను. నా దగ్గర పరిమిత సమాచారం అందుబాటులో ఉంది.",
		"gu": "હું હાલમાં ઑફલાઇન મોડમાં છું. મારી પાસે મર્યાદિત માહિતી ઉપલબ્ધ છે.",
		"es": "Estoy en modo sin conexión. Tengo información limitada disponible.",
	},
	KeyAssistantEmpty: {
		"en": "I couldn't generate a response. Please try again.",
	},
	KeyAssistantError: {
		"en": "Sorry, I'm having trouble connecting to the farm server right now. Please check your connection or try again later.",
	},
	KeyMarketOffline: {
		"en": "You are currently offline. Showing historical average data from local database. Please connect to internet for live prices.",
	},
	KeyMarketError: {
		"en": "Could not fetch market data visualization.",
	},
	KeyMarketSummary: {
		"en": "Here are the market trends.",
	},
	KeyMarketPrompt: {
		"en": "Check market prices in %s",
	},
	KeyDefaultLocation: {
		"en": "my area",
	},
	KeyVoiceLabel: {
		"en": "🎤 Audio Message",
		"hi": "🎤 ध्वनि संदेश",
		"mr": "🎤 व्हॉइस मेसेज",
		"gu": "🎤 વોઇસ મેસેજ",
	},
	KeyGreeting: {
		"en": "Hello %s! Welcome to your Maker Dashboard. Select a tool to get started.",
		"hi": "नमस्ते %s! एग्रीबॉट डैशबोर्ड में आपका स्वागत है। शुरू करने के लिए कोई उपकरण चुनें।",
		"mr": "नमस्कार %s! ॲग्रीबॉट डॅशबोर्डवर आपले स्वागत आहे.",
		"ta": "வணக்கம் %s! அக்ரிபாட் டாஷ்போர்டுக்கு வருக.",
		"te": "నమస్కారం %s! అగ్రిబాట్ డాష్‌బోర్డ్‌కు స్వాగతం.",
		"gu": "નમસ્તે %s! એગ્રીબોટ ડેશબોર્ડ પર આપનું સ્વાગત છે.",
		"es": "¡Hola %s! Bienvenido al panel de AgriBot.",
	},
	KeyConsultAccepted: {
		"en": "%s has accepted your request!",
	},
	KeyConsultSent: {
		"en": "Request Sent!",
		"hi": "अनुरोध भेजा गया!",
		"mr": "विनंती पाठवली!",
	},
	KeyConsultSentSub: {
		"en": "The expert will connect with you shortly.",
		"hi": "विशेषज्ञ जल्द ही आपसे संपर्क करेंगे।",
		"mr": "तज्ञ लवकरच तुमच्याशी संपर्क साधतील.",
	},
	KeyCameraPromptNote: {
		"en": "%s (I will upload an image soon)",
	},
}
