package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// categoryTags are the project categories advertised above the gallery.
// They are decorative and not tied to the dataset.
var categoryTags = []string{
	"Web Development",
	"Mobile App Development",
	"Full-Stack Development",
	"Frontend Development",
	"Backend Development",
	"AI & Machine Learning",
	"Data Science & Analytics",
	"Blockchain & Web3",
	"Cybersecurity",
	"Cloud Computing",
	"DevOps & CI/CD",
	"IoT & Embedded Systems",
	"Game Development",
	"AR/VR & Metaverse",
	"Automation & Scripting",
	"Open Source Contributions",
	"Software Development",
	"Networking & Security",
	"Database & SQL",
	"NoSQL & MongoDB",
	"System Design & Architecture",
	"API Development",
	"SaaS & No-Code",
	"Big Data & Analytics",
	"Computer Vision",
	"NLP (Natural Language Processing)",
	"Robotics & Hardware",
	"AI-Powered Chatbots",
	"Cloud-Native Applications",
	"Data Engineering",
	"Quantum Computing",
	"Hackathon Winning",
	"Freelance & Client-Based",
	"Academic & Research-Based",
	"Enterprise-Level Applications",
	"Startup MVPs & Prototypes",
	"Tech for Social Good",
	"Smart Home & Automation",
	"Finance & FinTech",
	"Healthcare & MedTech",
	"E-Commerce & Marketplace",
	"EdTech & Learning Platform",
	"SaaS Platform Development",
	"DevTools & Productivity",
	"Portfolio & Personal Branding",
	"Resume Builder & Career Tools",
	"Competitive Programming & Algorithmic",
	"Low-Code & No-Code AI",
}

// RenderTagStrip renders as many category tags as fit on one line of width,
// starting at offset so the strip can be rotated between renders.
func RenderTagStrip(s Styles, width, offset int) string {
	if width <= 0 || len(categoryTags) == 0 {
		return ""
	}

	var parts []string
	used := 0
	for i := 0; i < len(categoryTags); i++ {
		tag := categoryTags[(offset+i)%len(categoryTags)]
		w := lipgloss.Width(tag) + 3 // "· " separator plus space
		if used+w > width && len(parts) > 0 {
			break
		}
		parts = append(parts, tag)
		used += w
	}
	return s.Muted.Render(clip(strings.Join(parts, " · "), width))
}
