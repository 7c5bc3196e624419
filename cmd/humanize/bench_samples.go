package main

type benchSample struct {
	Name string
	Text string
}

// benchSamples are machine-sounding drafts at increasing lengths.
var benchSamples = []benchSample{
	{
		Name: "tiny",
		Text: "In conclusion, it is important to note that the proposed solution offers significant benefits.",
	},
	{
		Name: "short",
		Text: `The study examines the impact of remote work on employee productivity. Furthermore, it explores the various factors that contribute to successful remote collaboration. Additionally, the findings indicate that flexible schedules are associated with higher job satisfaction. Overall, the results suggest that organizations should consider adopting hybrid work models.`,
	},
	{
		Name: "medium",
		Text: `Climate change represents one of the most pressing challenges facing humanity in the twenty-first century. It is characterized by rising global temperatures, shifting precipitation patterns, and an increase in the frequency of extreme weather events. Moreover, these changes have profound implications for ecosystems, agriculture, and human health.

In order to address this issue effectively, it is essential to implement a comprehensive strategy that encompasses both mitigation and adaptation measures. Mitigation efforts focus on reducing greenhouse gas emissions through the adoption of renewable energy sources and improvements in energy efficiency. Adaptation measures, on the other hand, aim to enhance the resilience of communities to the impacts that are already unavoidable.

In conclusion, a coordinated global response is necessary to ensure a sustainable future for generations to come.`,
	},
	{
		Name: "long",
		Text: `Artificial intelligence has emerged as a transformative technology with the potential to reshape numerous aspects of modern society. From healthcare to finance, AI-driven systems are increasingly being deployed to automate tasks, analyze large datasets, and support decision-making processes. It is worth noting that these developments bring both opportunities and challenges.

One of the primary advantages of artificial intelligence is its ability to process vast amounts of information at a speed that far exceeds human capabilities. In the healthcare sector, for example, machine learning algorithms can assist clinicians in diagnosing diseases by identifying patterns in medical images. Similarly, in the financial industry, AI systems are utilized to detect fraudulent transactions and assess credit risk with a high degree of accuracy.

However, the widespread adoption of AI also raises significant ethical and social concerns. Issues such as algorithmic bias, data privacy, and the potential displacement of workers must be carefully considered. Furthermore, the lack of transparency in certain AI models, often referred to as the "black box" problem, makes it difficult to understand how specific decisions are reached.

To maximize the benefits of artificial intelligence while minimizing its risks, policymakers, researchers, and industry leaders must work collaboratively. This includes establishing clear regulatory frameworks, promoting transparency in algorithm design, and investing in education and retraining programs for affected workers.

In summary, artificial intelligence holds immense promise for improving efficiency and innovation across a wide range of sectors. Nevertheless, its development must be guided by ethical principles to ensure that its advantages are distributed fairly throughout society.`,
	},
}
