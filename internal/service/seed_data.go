package service

import "github.com/noah-isme/tutor-api/internal/qna"

// sampleLesson is a lesson shipped with the service for local development.
type sampleLesson struct {
	Title      string
	Content    string
	GradeLevel int
	Questions  qna.Pairs
}

const testLessonTitle = "Introduction to Shakespeare"

const testLessonContent = `William Shakespeare (1564-1616) was an English playwright, poet, and actor widely regarded as the greatest writer in the English language. Born in Stratford-upon-Avon, Shakespeare wrote approximately 37 plays and 154 sonnets during his career.

His works are divided into three main categories: comedies (such as "A Midsummer Night's Dream" and "Much Ado About Nothing"), tragedies (including "Hamlet," "Macbeth," and "Romeo and Juliet"), and histories (like "Henry V" and "Richard III").

Shakespeare's writing is renowned for its complex characters, intricate plots, and beautiful language. He invented many words and phrases that are still used today, such as "break the ice," "heart of gold," and "wild goose chase." His influence on literature, theater, and the English language continues to this day.`

var testLessonQuestions = qna.Pairs{
	{Question: "When was William Shakespeare born?", Answer: "William Shakespeare was born in 1564 in Stratford-upon-Avon, England."},
	{Question: "What are the three main categories of Shakespeare's works?", Answer: "Shakespeare's works are divided into comedies, tragedies, and histories."},
}

var testLesson = sampleLesson{
	Title:      testLessonTitle,
	Content:    testLessonContent,
	GradeLevel: 4,
	Questions:  testLessonQuestions,
}

const christmasLessonContent = `"The Best Christmas Present in the World" tells the story of an author who discovers a roll-top desk in poor condition. Despite its damaged state - with a broken roll-top, poorly repaired leg, and scorch marks - he decides to restore it. While working on the desk, he discovers a secret drawer containing a tin box with a letter from Jim Macpherson to his wife Connie.

The letter, dated December 26, 1914, describes an extraordinary Christmas Day during World War I when British and German soldiers in the trenches declared an unofficial truce. Jim writes about how he and a German soldier named Hans met in No Man's Land, where soldiers from both sides shared food, drinks, and even played football together. This magical moment of peace amid the horrors of war deeply moved both sides.

The author, feeling it was wrong but driven by curiosity, decides to find Mrs. Macpherson and return the letter. He tracks her down to Burlington House Nursing Home in Bridport, where he finds her living after her house burned down. When he presents her with the tin box, Mrs. Macpherson's eyes light up with joy, and in her confusion, she mistakes the author for her beloved husband Jim returning home for Christmas.

This touching story explores themes of love, war, hope, and the enduring power of human connection across time and conflict.`

var christmasLessonQuestions = qna.Pairs{
	{
		Question: "What kind of condition was the roll-top desk in when the author found it?  Describe its appearance.",
		Answer:   "The desk was in poor condition; the roll-top was broken into pieces, one leg was poorly repaired, and there were scorch marks down one side.  It showed signs of both fire and water damage, indicating it had been neglected or poorly cared for.",
	},
	{
		Question: "Why did the author think it was wrong to open the secret drawer, but do it anyway? Explain his reasoning.",
		Answer:   "The author knew it was wrong because the note on the tin box indicated the contents were meant to be buried with the owner. However, his curiosity overcame his scruples, a common human tendency to prioritize immediate satisfaction over ethical considerations.",
	},
	{
		Question: "What did Jim and Hans do together in No Man's Land on Christmas Day? Describe their activities.",
		Answer:   "Jim and Hans, along with other soldiers, engaged in an impromptu truce. They shared food and drinks (schnapps, sausage, rum, Christmas cake), talked about their lives and families, and even played a football match, symbolizing a temporary peace amidst the war.",
	},
	{
		Question: "How did the author find Mrs. Macpherson? Describe the steps he took to locate her.",
		Answer:   "After discovering Jim's letter, the author went to Bridport and inquired about Mrs. Macpherson's whereabouts.  He learned her house had burned down, and she was residing at Burlington House Nursing Home, where he eventually found her.",
	},
	{
		Question: "What was Mrs. Macpherson's reaction when the author gave her the tin box? Describe her emotional state.",
		Answer:   "Initially, Mrs. Macpherson seemed confused and vacant. However, upon recognizing the tin box, her eyes lit up, and her face radiated happiness.  She became emotional, expressing overwhelming joy at seeing the author, whom she believed to be her deceased son, Jim, returned home.",
	},
}

var christmasLesson = sampleLesson{
	Title:      "The Best Christmas Present in the World",
	Content:    christmasLessonContent,
	GradeLevel: 4,
	Questions:  christmasLessonQuestions,
}

// sampleLessons are created by the seed command.
var sampleLessons = []sampleLesson{christmasLesson, testLesson}
