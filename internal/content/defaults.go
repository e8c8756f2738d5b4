package content

var (
	summary = `I am a final-year B.Tech undergraduate in Electronics and Communication Engineering at
**MNNIT Allahabad**, driven by a relentless passion for software development and algorithmic
problem-solving. With a robust foundation in Data Structures and Algorithms (having solved over
1500+ problems), I specialize in architecting scalable full-stack web applications using the MERN
stack and Next.js. My experience spans from developing AI-powered feedback systems to creating
real-time social platforms, always focusing on writing efficient, clean code. I thrive in
challenging environments that demand creative thinking and am constantly seeking opportunities to
leverage technology to build impactful, user-centric solutions.`

	projectInsights = `AI-powered campus feedback platform utilizing OpenAI to summarize student
opinions and facilitate administrative improvements.`

	projectPsychoCorp = `Comprehensive mental health platform connecting users with similar
conditions and professional therapists for support.`

	projectFoodFactory = `Streamlined online food ordering application for college cafes featuring
real-time order tracking and chatbot support.`
)

// Default returns the built-in portfolio content. Each call returns a fresh copy.
func Default() Profile {
	return Profile{
		Name:             "Aryan Srivastava",
		Role:             "Software Engineer",
		Roles:            []string{"Software Engineer", "Competitive Coder", "Problem Solver", "Full Stack Developer"},
		SubRole:          "B.Tech MNNIT Allahabad",
		About:            "a B.Tech student at MNNIT",
		Summary:          summary,
		ResumeURL:        "https://drive.google.com/file/d/1Kl80fKT44x4yvu5QGNLTeS_K56tGcLAq/view?usp=drive_link",
		Photo:            "images/mypic.jpeg",
		PhotoFallbackURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=1000&auto=format&fit=crop",
		Achievements: []Achievement{
			{Title: "DSA Achievement", Description: "Solved 1500+ DSA questions across all platforms"},
			{Title: "Competitive Programming", Description: "Global Rank: 37 in CodeChef Starters 184"},
			{Title: "Hackathon Finalist", Description: "Amongst Top Teams in DevJam - Web Development Competition"},
			{Title: "Cultural Winner", Description: "Winner of Hasyamanch in Culrav 23 (Dramatics Event)"},
		},
		Projects: []Project{
			{
				Title:       "MNNIT Insights",
				Description: projectInsights,
				Tagline:     "AI feedback system",
				Stack:       []string{"Next.js", "Tailwind CSS", "MongoDB", "NextAuth", "Resend", "OpenAI API"},
				Link:        "https://github.com/aryanwebd35/MNNIT-Insights",
			},
			{
				Title:       "PsychoCorp",
				Description: projectPsychoCorp,
				Tagline:     "mental health platform",
				Stack:       []string{"React.js", "Node.js", "Express.js", "MongoDB", "JWT"},
				Link:        "https://github.com/aryanwebd35/PsychoCorp",
			},
			{
				Title:       "Food Factory",
				Description: projectFoodFactory,
				Tagline:     "food ordering app",
				Stack:       []string{"React.js", "Node.js", "Tailwind CSS", "JavaScript", "HTML"},
				Link:        "https://github.com/aryanwebd35/Food-Factory",
			},
		},
		Skills: []string{
			"C/C++", "JavaScript", "HTML5", "CSS3", "React.js", "Next.js", "Node.js",
			"Express.js", "Tailwind", "MongoDB", "MySQL", "Git & GitHub", "Postman",
			"VS Code", "DSA", "OOP", "OS", "DBMS", "System Design", "Networks",
		},
		Contact: Contact{
			Email:     "aryansri6362@gmail.com",
			Phone:     "+91-8744012078",
			GitHub:    "aryanwebd35",
			LinkedIn:  "aryan-srivastava-223694269",
			Instagram: "ary.sri_35",
		},
		CodingProfiles: []CodingProfile{
			{Name: "LeetCode", URL: "https://leetcode.com/u/aryancpp/"},
			{Name: "CodeForces", URL: "https://codeforces.com/profile/aryan_0512"},
			{Name: "CodeChef", URL: "https://www.codechef.com/users/aryan_cpp"},
			{Name: "Code360", URL: "https://www.naukri.com/code360/profile/efeb7839-b365-41c7-ad49-122578c0e53c"},
			{Name: "GeeksforGeeks", URL: "https://www.geeksforgeeks.org/profile/aryanchex5ku?tab=activity"},
		},
	}
}
